package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"dealgraph.app/insight/common/id"
	"dealgraph.app/insight/internal/http/handler"
	"dealgraph.app/insight/internal/model"
	"dealgraph.app/insight/internal/timeline"
)

var _ = Describe("TimelineHandler", func() {
	var (
		router *gin.Engine
		svc    *mockTimelineService
	)

	BeforeEach(func() {
		Expect(id.Init(1)).To(Succeed())

		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockTimelineService{}
		h := handler.NewTimelineHandler(svc)
		router.GET("/projects/:project/timeline", h.Get)
		router.POST("/inspections", h.StartInspection)
		router.GET("/inspections/current", h.CurrentInspection)
	})

	Describe("Get", func() {
		It("returns 200 with the sorted narrative", func() {
			svc.fetchFn = func(_ context.Context, project string) (model.Timeline, error) {
				Expect(project).To(Equal("walzwerk-nord"))
				return model.Timeline{
					Project:  "walzwerk-nord",
					Customer: "Stahl Weber GmbH",
					Events: []model.TimelineEvent{
						{Step: 1, Date: "12.03.2024", Sender: "H. Weber", Summary: "initial request"},
					},
				}, nil
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/walzwerk-nord/timeline", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["project"]).To(Equal("walzwerk-nord"))
			Expect(resp["timeline"]).To(HaveLen(1))
		})

		It("returns 404 with a specific message for an unknown project", func() {
			svc.fetchFn = func(_ context.Context, _ string) (model.Timeline, error) {
				return model.Timeline{}, timeline.ErrProjectNotFound
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/ghost/timeline", nil))

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Body.String()).To(ContainSubstring("project not found"))
		})

		It("returns 502 with a generic message on transport failures", func() {
			svc.fetchFn = func(_ context.Context, _ string) (model.Timeline, error) {
				return model.Timeline{}, &timeline.TransportError{Op: "calling knowledge backend", Err: errors.New("connection refused")}
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/walzwerk-nord/timeline", nil))

			Expect(w.Code).To(Equal(http.StatusBadGateway))
			Expect(w.Body.String()).NotTo(ContainSubstring("connection refused"))
		})
	})

	Describe("StartInspection", func() {
		It("returns 202 with the generation token", func() {
			svc.inspectFn = func(_ context.Context, project string) string {
				Expect(project).To(Equal("walzwerk-nord"))
				return "gen-123"
			}

			body, _ := json.Marshal(map[string]string{"project": "walzwerk-nord"})
			req := httptest.NewRequest(http.MethodPost, "/inspections", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusAccepted))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["generation"]).To(Equal("gen-123"))
			Expect(resp["state"]).To(Equal("loading"))
		})

		It("returns 400 on a missing project", func() {
			req := httptest.NewRequest(http.MethodPost, "/inspections", bytes.NewBufferString(`{}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("CurrentInspection", func() {
		It("reports the lifecycle snapshot", func() {
			svc.currentFn = func() timeline.Snapshot {
				return timeline.Snapshot{
					State:      timeline.StateSuccess,
					Key:        "walzwerk-nord",
					Generation: "gen-123",
					Timeline:   &model.Timeline{Project: "walzwerk-nord"},
				}
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inspections/current", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["state"]).To(Equal("success"))
			Expect(resp["project"]).To(Equal("walzwerk-nord"))
			Expect(resp["timeline"]).NotTo(BeNil())
		})

		It("carries the error message in the error state", func() {
			svc.currentFn = func() timeline.Snapshot {
				return timeline.Snapshot{
					State: timeline.StateError,
					Key:   "walzwerk-nord",
					Err:   errors.New("backend unreachable"),
				}
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inspections/current", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("backend unreachable"))
		})
	})
})
