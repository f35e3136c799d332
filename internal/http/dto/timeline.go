package dto

import (
	"dealgraph.app/insight/internal/model"
	"dealgraph.app/insight/internal/timeline"
)

// TimelineResponse is the validated, step-sorted narrative handed to the
// presentation layer. Events pass through the model shape unchanged; all
// visual mapping (colors, icons, category styling) happens client-side.
type TimelineResponse struct {
	Project  string                `json:"project"`
	Customer string                `json:"customer,omitempty"`
	Events   []model.TimelineEvent `json:"timeline"`
}

func ToTimelineResponse(tl model.Timeline) *TimelineResponse {
	events := tl.Events
	if events == nil {
		events = []model.TimelineEvent{}
	}
	return &TimelineResponse{
		Project:  tl.Project,
		Customer: tl.Customer,
		Events:   events,
	}
}

type StartInspectionRequest struct {
	Project string `json:"project" binding:"required,min=1,max=255"`
}

type InspectionResponse struct {
	State      string            `json:"state"`
	Project    string            `json:"project,omitempty"`
	Generation string            `json:"generation,omitempty"`
	Timeline   *TimelineResponse `json:"timeline,omitempty"`
	Error      string            `json:"error,omitempty"`
}

func ToInspectionResponse(snap timeline.Snapshot) *InspectionResponse {
	resp := &InspectionResponse{
		State:      string(snap.State),
		Project:    snap.Key,
		Generation: snap.Generation,
	}
	if snap.Timeline != nil {
		resp.Timeline = ToTimelineResponse(*snap.Timeline)
	}
	if snap.Err != nil {
		resp.Error = snap.Err.Error()
	}
	return resp
}
