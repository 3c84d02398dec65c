package http

import (
	"net/http"

	"github.com/aussiebroadwan/campus/internal/course/service"
	"github.com/aussiebroadwan/campus/internal/domain"
	"github.com/aussiebroadwan/campus/pkg/httpx"
	"github.com/aussiebroadwan/campus/pkg/sdk"
)

type CoursesHandler struct {
	CourseService *service.CourseService
}

// HandleList godoc
//
//	@Summary		List courses
//	@Description	Lists every course, newest first.
//	@Tags			Courses
//	@Produce		json
//	@Success		200	{array}	sdk.CourseResponse
//	@Router			/courses [get].
func (h *CoursesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	courses, err := h.CourseService.List(r.Context())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	resp := make([]sdk.CourseResponse, 0, len(courses))
	for _, c := range courses {
		resp = append(resp, courseResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet godoc
//
//	@Summary		Get a course
//	@Description	Returns one course.
//	@Tags			Courses
//	@Produce		json
//	@Param			id	path		string	true	"Course id (ULID)"
//	@Success		200	{object}	sdk.CourseResponse
//	@Failure		404	{object}	sdk.ErrorResponse	"Course not found"
//	@Router			/courses/{id} [get].
func (h *CoursesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	course, err := h.CourseService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, courseResponse(course))
}

// HandleCreate godoc
//
//	@Summary		Create a course
//	@Description	Creates a course owned by the caller. Instructors and admins only.
//	@Tags			Courses
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sdk.CreateCourseRequest	true	"Course details"
//	@Success		201		{object}	sdk.CourseResponse
//	@Failure		400		{object}	sdk.ErrorResponse	"Malformed JSON body"
//	@Failure		401		{object}	sdk.ErrorResponse	"Invalid or missing token"
//	@Failure		403		{object}	sdk.ErrorResponse	"Insufficient permissions"
//	@Failure		422		{object}	sdk.ErrorResponse	"Field validation failed"
//	@Router			/courses [post].
func (h *CoursesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req sdk.CreateCourseRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	course, err := h.CourseService.Create(r.Context(), httpx.IdentityFromContext(r.Context()), service.CreateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	w.Header().Set("Location", "/courses/"+course.ID)
	httpx.WriteJSON(w, http.StatusCreated, courseResponse(course))
}

// HandleUpdate godoc
//
//	@Summary		Update a course
//	@Description	Partially updates a course. Absent fields keep their value. Owner or admin only.
//	@Tags			Courses
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Course id (ULID)"
//	@Param			request	body		sdk.UpdateCourseRequest	true	"Fields to change"
//	@Success		200		{object}	sdk.CourseResponse
//	@Failure		400		{object}	sdk.ErrorResponse	"Malformed JSON body"
//	@Failure		401		{object}	sdk.ErrorResponse	"Invalid or missing token"
//	@Failure		403		{object}	sdk.ErrorResponse	"Not the owner"
//	@Failure		404		{object}	sdk.ErrorResponse	"Course not found"
//	@Failure		422		{object}	sdk.ErrorResponse	"Field validation failed"
//	@Router			/courses/{id} [put].
func (h *CoursesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req sdk.UpdateCourseRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	ctx := r.Context()
	course, err := h.CourseService.Update(ctx, httpx.IdentityFromContext(ctx), r.PathValue("id"), service.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, courseResponse(course))
}

// HandleDelete godoc
//
//	@Summary		Delete a course
//	@Description	Deletes a course and its enrollments. Owner or admin only.
//	@Tags			Courses
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Course id (ULID)"
//	@Success		204
//	@Failure		401	{object}	sdk.ErrorResponse	"Invalid or missing token"
//	@Failure		403	{object}	sdk.ErrorResponse	"Not the owner"
//	@Failure		404	{object}	sdk.ErrorResponse	"Course not found"
//	@Router			/courses/{id} [delete].
func (h *CoursesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.CourseService.Delete(ctx, httpx.IdentityFromContext(ctx), r.PathValue("id")); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func courseResponse(c domain.Course) sdk.CourseResponse {
	return sdk.CourseResponse{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		InstructorID: c.InstructorID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
