package backend_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"dealgraph.app/insight/internal/backend"
	"dealgraph.app/insight/internal/timeline"
)

var _ = Describe("Client", func() {
	newClient := func(baseURL string) *backend.Client {
		client, err := backend.NewClient(backend.Config{BaseURL: baseURL})
		Expect(err).NotTo(HaveOccurred())
		return client
	}

	It("requires a base URL", func() {
		_, err := backend.NewClient(backend.Config{})
		Expect(err).To(HaveOccurred())
	})

	It("decodes a timeline document including logic nodes", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/api/v1/projects/walzwerk-nord/timeline"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"project": "walzwerk-nord",
				"customer": "Stahl Weber GmbH",
				"timeline": [
					{"step": 2, "date": "14.03.2024", "time": "09:12", "sender": "H. Weber",
					 "sender_email": "weber@example.de", "summary": "discount offered",
					 "logic_node": {"node_type": "Action", "type": "pricing",
					                "description": "volume discount proposed", "citation": "20% rabatt"}},
					{"step": 1, "date": "12.03.2024", "sender": "H. Weber",
					 "summary": "initial request", "logic_node": null}
				]
			}`))
		}))
		defer server.Close()

		tl, err := newClient(server.URL).GetTimeline(context.Background(), "walzwerk-nord")
		Expect(err).NotTo(HaveOccurred())

		Expect(tl.Project).To(Equal("walzwerk-nord"))
		Expect(tl.Customer).To(Equal("Stahl Weber GmbH"))
		Expect(tl.Events).To(HaveLen(2))

		// The client returns backend order; ordering is the assembler's job.
		Expect(tl.Events[0].Step).To(Equal(2))
		Expect(tl.Events[0].LogicNode.Citation).To(Equal("20% rabatt"))
		Expect(tl.Events[1].LogicNode).To(BeNil())
	})

	It("maps 404 to ErrProjectNotFound, never TransportError", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := newClient(server.URL).GetTimeline(context.Background(), "ghost-project")
		Expect(errors.Is(err, timeline.ErrProjectNotFound)).To(BeTrue())

		var tErr *timeline.TransportError
		Expect(errors.As(err, &tErr)).To(BeFalse())
	})

	It("maps other failure statuses to TransportError", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := newClient(server.URL).GetTimeline(context.Background(), "walzwerk-nord")

		var tErr *timeline.TransportError
		Expect(errors.As(err, &tErr)).To(BeTrue())
		Expect(errors.Is(err, timeline.ErrProjectNotFound)).To(BeFalse())
	})

	It("maps decode failures to TransportError", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"project": `))
		}))
		defer server.Close()

		_, err := newClient(server.URL).GetTimeline(context.Background(), "walzwerk-nord")

		var tErr *timeline.TransportError
		Expect(errors.As(err, &tErr)).To(BeTrue())
	})

	It("escapes project names in the request path", func() {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.EscapedPath()
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, _ = newClient(server.URL).GetTimeline(context.Background(), "anlage süd/2024")
		Expect(gotPath).To(ContainSubstring("anlage%20s%C3%BCd%2F2024"))
	})
})
