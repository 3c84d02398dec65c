package http

import (
	"net/http"

	"github.com/aussiebroadwan/campus/internal/enrollment/service"
	"github.com/aussiebroadwan/campus/pkg/httpx"
	"github.com/aussiebroadwan/campus/pkg/sdk"
)

type EnrollmentsHandler struct {
	EnrollmentService *service.EnrollmentService
}

// HandleEnroll godoc
//
//	@Summary		Enroll in a course
//	@Description	Enrolls the caller in a course. Enrolling twice is a conflict.
//	@Tags			Enrollments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sdk.EnrollRequest	true	"Course to enroll in"
//	@Success		201		{object}	sdk.EnrollmentResponse
//	@Failure		400		{object}	sdk.ErrorResponse	"Malformed JSON body"
//	@Failure		401		{object}	sdk.ErrorResponse	"Invalid or missing token"
//	@Failure		404		{object}	sdk.ErrorResponse	"Course not found"
//	@Failure		409		{object}	sdk.ErrorResponse	"Already enrolled"
//	@Failure		422		{object}	sdk.ErrorResponse	"Field validation failed"
//	@Router			/enrollments [post].
func (h *EnrollmentsHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	var req sdk.EnrollRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	ctx := r.Context()
	e, err := h.EnrollmentService.Enroll(ctx, httpx.IdentityFromContext(ctx), req.CourseID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, sdk.EnrollmentResponse{
		UserID:         e.UserID,
		CourseID:       e.CourseID,
		EnrollmentDate: e.EnrollmentDate,
	})
}

// HandleMyCourses godoc
//
//	@Summary		My courses
//	@Description	Lists the caller's courses, most recent enrollment first.
//	@Tags			Enrollments
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		sdk.EnrolledCourseResponse
//	@Failure		401	{object}	sdk.ErrorResponse	"Invalid or missing token"
//	@Router			/enrollments/my-courses [get].
func (h *EnrollmentsHandler) HandleMyCourses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	courses, err := h.EnrollmentService.ListMine(ctx, httpx.IdentityFromContext(ctx))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	resp := make([]sdk.EnrolledCourseResponse, 0, len(courses))
	for _, c := range courses {
		resp = append(resp, sdk.EnrolledCourseResponse{
			CourseID:       c.CourseID,
			Title:          c.Title,
			Description:    c.Description,
			InstructorID:   c.InstructorID,
			EnrollmentDate: c.EnrollmentDate,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
