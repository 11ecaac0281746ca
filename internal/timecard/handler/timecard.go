package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hourbook/hourbook-backend/internal/timecard/domain"
	"github.com/hourbook/hourbook-backend/internal/timecard/service"
	"github.com/hourbook/hourbook-backend/pkg/errors"
	"github.com/hourbook/hourbook-backend/pkg/httputil"
	"github.com/hourbook/hourbook-backend/pkg/logger"
)

const dateLayout = "2006-01-02"

// TimecardHandler handles timecard endpoints
type TimecardHandler struct {
	service *service.TimecardService
	logger  *logger.Logger
}

// NewTimecardHandler creates a new timecard handler
func NewTimecardHandler(svc *service.TimecardService, log *logger.Logger) *TimecardHandler {
	return &TimecardHandler{
		service: svc,
		logger:  log,
	}
}

// List returns timecards matching the request's query filters
// GET /timecards?after=&date=&user=&project=&submitted=
func (h *TimecardHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	cards, err := h.service.ListTimecards(r.Context(), filters)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, cards)
}

// parseFilters reads the supported filter query parameters. Unknown
// parameters are ignored.
func parseFilters(r *http.Request) (domain.FilterParams, error) {
	var filters domain.FilterParams
	q := r.URL.Query()

	if v := q.Get("after"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return filters, errors.BadRequest("after must be a date in YYYY-MM-DD format")
		}
		filters.After = &t
	}
	if v := q.Get("date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return filters, errors.BadRequest("date must be a date in YYYY-MM-DD format")
		}
		filters.Date = &t
	}
	if v := q.Get("user"); v != "" {
		filters.User = &v
	}
	if v := q.Get("project"); v != "" {
		filters.Project = &v
	}
	if v := q.Get("submitted"); v != "" {
		filters.Submitted = &v
	}

	return filters, nil
}

// addHoursRequest matches the hour recording payload. The project ID and
// hours are sent as strings by existing clients, so both are accepted as
// strings and parsed here.
type addHoursRequest struct {
	Username   string `json:"username" validate:"required"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
	ProjectID  string `json:"id" validate:"required"`
	HoursSpent string `json:"hours_spent" validate:"required"`
}

// addHoursResponse wraps the result with a human-readable message
type addHoursResponse struct {
	Message string                  `json:"message"`
	Result  *service.AddHoursResult `json:"result"`
}

// AddHours records hours against a project on an existing timecard
// POST /timecards/hours
func (h *TimecardHandler) AddHours(w http.ResponseWriter, r *http.Request) {
	var req addHoursRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		httputil.Error(w, errors.BadRequest("end_date must be a date in YYYY-MM-DD format"))
		return
	}

	projectID, err := strconv.ParseInt(req.ProjectID, 10, 64)
	if err != nil {
		httputil.Error(w, errors.BadRequest("id must be an integer project ID"))
		return
	}

	hours, err := domain.ParseHours(req.HoursSpent)
	if err != nil {
		httputil.Error(w, errors.BadRequest("hours_spent must be a non-negative decimal"))
		return
	}

	result, err := h.service.AddHours(r.Context(), service.AddHoursParams{
		Username:  req.Username,
		EndDate:   endDate,
		ProjectID: projectID,
		Hours:     hours,
	})
	if err != nil {
		httputil.Error(w, err)
		return
	}

	message := fmt.Sprintf("%s now has %s hours against %s for the period ending %s",
		result.Username, result.TotalHours, result.ProjectName, req.EndDate)

	httputil.JSON(w, http.StatusOK, addHoursResponse{
		Message: message,
		Result:  result,
	})
}

// HoursByQuarter returns aggregated hours per fiscal quarter
// GET /reports/hours-by-quarter
func (h *TimecardHandler) HoursByQuarter(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.HoursByQuarter(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, rows)
}

// HoursByQuarterByUser returns aggregated hours per fiscal quarter per user
// GET /reports/hours-by-quarter-by-user
func (h *TimecardHandler) HoursByQuarterByUser(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.HoursByQuarterByUser(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, rows)
}

// ListReportingPeriods returns all reporting periods
// GET /reporting-periods
func (h *TimecardHandler) ListReportingPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.service.ListReportingPeriods(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, periods)
}

// Audit returns the current employees missing a submitted timecard for the
// reporting period starting on the given date
// GET /reporting-periods/{start_date}/audit
func (h *TimecardHandler) Audit(w http.ResponseWriter, r *http.Request) {
	startDate, err := time.Parse(dateLayout, chi.URLParam(r, "start_date"))
	if err != nil {
		httputil.Error(w, errors.BadRequest("start_date must be a date in YYYY-MM-DD format"))
		return
	}

	users, err := h.service.AuditReportingPeriod(r.Context(), startDate)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, users)
}

// ListProjects returns all projects
// GET /projects
func (h *TimecardHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.ListProjects(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, projects)
}

// GetProject returns one project
// GET /projects/{id}
func (h *TimecardHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.Error(w, errors.BadRequest("id must be an integer project ID"))
		return
	}

	project, err := h.service.GetProject(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, project)
}

// ListUsers returns all users
// GET /users
func (h *TimecardHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, users)
}
