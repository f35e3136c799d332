package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"dealgraph.app/insight/internal/coverage"
	"dealgraph.app/insight/internal/http/handler"
	"dealgraph.app/insight/internal/model"
	"dealgraph.app/insight/internal/service"
)

var _ = Describe("CoverageHandler", func() {
	var (
		router *gin.Engine
		svc    *mockCoverageService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockCoverageService{}
		h := handler.NewCoverageHandler(svc)
		router.GET("/coverage", h.Report)
		router.GET("/coverage/records", h.Records)
	})

	It("returns 200 with the aggregate report", func() {
		svc.reportFn = func(_ context.Context) (*service.CoverageReport, error) {
			return &service.CoverageReport{
				Stats: coverage.AggregateStats{
					TotalRecords: 3,
					TotalEmails:  10,
					RecordCounts: map[model.CoverageStatus]int{
						model.CoverageStatusCovered:    1,
						model.CoverageStatusPartial:    1,
						model.CoverageStatusNotCovered: 1,
					},
					EmailCounts: map[model.CoverageStatus]int{
						model.CoverageStatusCovered:    7,
						model.CoverageStatusPartial:    2,
						model.CoverageStatusNotCovered: 1,
					},
				},
				Percentages: map[model.CoverageStatus]float64{
					model.CoverageStatusCovered:    0.7,
					model.CoverageStatusPartial:    0.2,
					model.CoverageStatusNotCovered: 0.1,
				},
				Remainder: 1,
			}, nil
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/coverage", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["total_emails"]).To(BeEquivalentTo(10))
		Expect(resp["remainder"]).To(BeEquivalentTo(1))

		covered := resp["covered"].(map[string]any)
		Expect(covered["percentage"]).To(BeNumerically("~", 0.7, 1e-9))
	})

	It("returns 422 when the catalog fails validation", func() {
		svc.reportFn = func(_ context.Context) (*service.CoverageReport, error) {
			return nil, &coverage.ValidationError{RecordID: "dup", Reason: "duplicate id"}
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/coverage", nil))

		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
	})

	It("returns 500 on other report failures", func() {
		svc.reportFn = func(_ context.Context) (*service.CoverageReport, error) {
			return nil, errors.New("catalog store down")
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/coverage", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})

	It("passes the status filter through and defaults to all", func() {
		var gotSelector string
		svc.recordsFn = func(_ context.Context, selector string) ([]model.CoverageRecord, error) {
			gotSelector = selector
			return []model.CoverageRecord{{ID: "price-request", Status: model.CoverageStatusCovered}}, nil
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/coverage/records", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(gotSelector).To(Equal("all"))

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/coverage/records?status=partial", nil))
		Expect(gotSelector).To(Equal("partial"))
	})

	It("returns 400 for an unknown status filter", func() {
		svc.recordsFn = func(_ context.Context, selector string) ([]model.CoverageRecord, error) {
			return nil, &coverage.ValidationError{Reason: "unknown status filter"}
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/coverage/records?status=bogus", nil))

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns an empty list, not null, when nothing matches", func() {
		svc.recordsFn = func(_ context.Context, _ string) ([]model.CoverageRecord, error) {
			return nil, nil
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/coverage/records?status=partial", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"records":[]`))
	})
})
