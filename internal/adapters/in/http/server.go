package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/issue"
	"fulfillment/internal/core/domain/model/kernel"
)

// Server exposes the delivery lifecycle over HTTP.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	updateStatusHandler commands.UpdateDeliveryStatusCommandHandler
	validateHandler     commands.ValidateDeliveryCommandHandler
	reportIssueHandler  commands.ReportIssueCommandHandler

	// Query handlers
	getTrackingHandler queries.GetTrackingQueryHandler
	getIssuesHandler   queries.GetIssuesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	updateStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	validateHandler commands.ValidateDeliveryCommandHandler,
	reportIssueHandler commands.ReportIssueCommandHandler,
	getTrackingHandler queries.GetTrackingQueryHandler,
	getIssuesHandler queries.GetIssuesQueryHandler,
) *Server {
	return &Server{
		updateStatusHandler: updateStatusHandler,
		validateHandler:     validateHandler,
		reportIssueHandler:  reportIssueHandler,
		getTrackingHandler:  getTrackingHandler,
		getIssuesHandler:    getIssuesHandler,
	}
}

// RegisterRoutes attaches all delivery endpoints to the echo instance.
// The health endpoint stays outside the identity middleware.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1", ActorMiddleware())
	api.PATCH("/deliveries/:id/status", s.UpdateDeliveryStatus)
	api.POST("/deliveries/:id/validate", s.ValidateDelivery)
	api.GET("/deliveries/:id/tracking", s.GetTracking)
	api.POST("/deliveries/:id/issues", s.ReportIssue)
	api.GET("/deliveries/:id/issues", s.GetIssues)
}

// DeliveryResponse is the lifecycle view of a delivery after a command.
type DeliveryResponse struct {
	ID                 string     `json:"id"`
	Status             string     `json:"status"`
	Version            int        `json:"version"`
	ClientValidated    *bool      `json:"clientValidated,omitempty"`
	ClientRating       *int       `json:"clientRating,omitempty"`
	ActualDeliveryDate *time.Time `json:"actualDeliveryDate,omitempty"`
}

func deliveryResponseFrom(aggregate *delivery.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:                 aggregate.ID().String(),
		Status:             aggregate.Status().String(),
		Version:            aggregate.Version(),
		ClientValidated:    aggregate.ClientValidated(),
		ClientRating:       aggregate.ClientRating(),
		ActualDeliveryDate: aggregate.ActualDeliveryDate(),
	}
}

// UpdateDeliveryStatus handles PATCH /api/v1/deliveries/:id/status.
func (s *Server) UpdateDeliveryStatus(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return writeBadRequest(c, "Missing actor")
	}

	deliveryID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeBadRequest(c, "Invalid delivery id")
	}

	var request UpdateStatusRequest
	if err = c.Bind(&request); err != nil {
		return writeBadRequest(c, "Invalid request body")
	}
	if err = c.Validate(&request); err != nil {
		return writeBadRequest(c, "Invalid request body: "+err.Error())
	}

	newStatus, err := delivery.ParseStatus(request.Status)
	if err != nil {
		return writeError(c, err)
	}

	location, err := request.Location.toDomain()
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(deliveryID, actor,
		newStatus, location, request.Notes)
	if err != nil {
		return writeError(c, err)
	}

	updated, err := s.updateStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, deliveryResponseFrom(updated))
}

// ValidateDelivery handles POST /api/v1/deliveries/:id/validate.
func (s *Server) ValidateDelivery(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return writeBadRequest(c, "Missing actor")
	}

	deliveryID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeBadRequest(c, "Invalid delivery id")
	}

	var request ValidateDeliveryRequest
	if err = c.Bind(&request); err != nil {
		return writeBadRequest(c, "Invalid request body")
	}
	if err = c.Validate(&request); err != nil {
		return writeBadRequest(c, "Invalid request body: "+err.Error())
	}

	issues := make([]delivery.IssueSummary, 0, len(request.Issues))
	for _, body := range request.Issues {
		summary, summaryErr := delivery.NewIssueSummary(body.Type, body.Description)
		if summaryErr != nil {
			return writeError(c, summaryErr)
		}
		issues = append(issues, summary)
	}

	cmd, err := commands.NewValidateDeliveryCommand(deliveryID, actor,
		*request.Validated, request.Rating, request.Review, issues)
	if err != nil {
		return writeError(c, err)
	}

	validated, err := s.validateHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, deliveryResponseFrom(validated))
}

// TrackingEventBody is one history entry in the tracking response.
type TrackingEventBody struct {
	ID        string        `json:"id"`
	Status    string        `json:"status"`
	Location  *LocationBody `json:"location,omitempty"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
}

// TrackingResponse is the body of GET /api/v1/deliveries/:id/tracking.
type TrackingResponse struct {
	DeliveryID      string              `json:"deliveryId"`
	Status          string              `json:"status"`
	Progress        int                 `json:"progress"`
	CurrentLocation *LocationBody       `json:"currentLocation,omitempty"`
	Events          []TrackingEventBody `json:"events"`
}

func locationBodyFrom(location *kernel.Location) *LocationBody {
	if location == nil {
		return nil
	}
	return &LocationBody{
		Latitude:  location.Latitude(),
		Longitude: location.Longitude(),
	}
}

// GetTracking handles GET /api/v1/deliveries/:id/tracking.
func (s *Server) GetTracking(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return writeBadRequest(c, "Missing actor")
	}

	deliveryID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeBadRequest(c, "Invalid delivery id")
	}

	query, err := queries.NewGetTrackingQuery(deliveryID, actor)
	if err != nil {
		return writeError(c, err)
	}

	tracking, err := s.getTrackingHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	events := make([]TrackingEventBody, len(tracking.Events))
	for i, event := range tracking.Events {
		events[i] = TrackingEventBody{
			ID:        event.ID.String(),
			Status:    event.Status,
			Location:  locationBodyFrom(event.Location),
			Message:   event.Message,
			Timestamp: event.Timestamp,
		}
	}

	return c.JSON(http.StatusOK, TrackingResponse{
		DeliveryID:      tracking.DeliveryID.String(),
		Status:          tracking.Status,
		Progress:        tracking.Progress,
		CurrentLocation: locationBodyFrom(tracking.CurrentLocation),
		Events:          events,
	})
}

// IssueResponse is one reported issue in API form.
type IssueResponse struct {
	ID          string        `json:"id"`
	DeliveryID  string        `json:"deliveryId"`
	ReporterID  string        `json:"reporterId"`
	Type        string        `json:"type"`
	Severity    string        `json:"severity"`
	Status      string        `json:"status"`
	Description string        `json:"description"`
	Location    *LocationBody `json:"location,omitempty"`
	Photos      []string      `json:"photos,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// ReportIssue handles POST /api/v1/deliveries/:id/issues.
func (s *Server) ReportIssue(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return writeBadRequest(c, "Missing actor")
	}

	deliveryID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeBadRequest(c, "Invalid delivery id")
	}

	var request ReportIssueRequest
	if err = c.Bind(&request); err != nil {
		return writeBadRequest(c, "Invalid request body")
	}
	if err = c.Validate(&request); err != nil {
		return writeBadRequest(c, "Invalid request body: "+err.Error())
	}

	issueType, err := issue.ParseType(request.Type)
	if err != nil {
		return writeError(c, err)
	}
	severity := issue.SeverityMedium
	if request.Severity != "" {
		if severity, err = issue.ParseSeverity(request.Severity); err != nil {
			return writeError(c, err)
		}
	}

	location, err := request.Location.toDomain()
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewReportIssueCommand(deliveryID, actor, issueType,
		severity, request.Description, location, request.Photos)
	if err != nil {
		return writeError(c, err)
	}

	reported, err := s.reportIssueHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, IssueResponse{
		ID:          reported.ID().String(),
		DeliveryID:  reported.DeliveryID().String(),
		ReporterID:  reported.ReporterID().String(),
		Type:        reported.Type().String(),
		Severity:    reported.Severity().String(),
		Status:      reported.Status().String(),
		Description: reported.Description(),
		Location:    locationBodyFrom(reported.Location()),
		Photos:      reported.Photos(),
		CreatedAt:   reported.CreatedAt(),
	})
}

// GetIssues handles GET /api/v1/deliveries/:id/issues.
func (s *Server) GetIssues(c echo.Context) error {
	actor, ok := actorFrom(c)
	if !ok {
		return writeBadRequest(c, "Missing actor")
	}

	deliveryID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return writeBadRequest(c, "Invalid delivery id")
	}

	query, err := queries.NewGetIssuesQuery(deliveryID, actor)
	if err != nil {
		return writeError(c, err)
	}

	issues, err := s.getIssuesHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]IssueResponse, len(issues))
	for i, reported := range issues {
		response[i] = IssueResponse{
			ID:          reported.ID.String(),
			DeliveryID:  reported.DeliveryID.String(),
			ReporterID:  reported.ReporterID.String(),
			Type:        reported.Type,
			Severity:    reported.Severity,
			Status:      reported.Status,
			Description: reported.Description,
			Location:    locationBodyFrom(reported.Location),
			Photos:      reported.Photos,
			CreatedAt:   reported.CreatedAt,
		}
	}

	return c.JSON(http.StatusOK, response)
}
