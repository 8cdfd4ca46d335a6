package admin

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/coursequiz/internal/controller"
	"github.com/lshigami/coursequiz/internal/dto"
	"github.com/lshigami/coursequiz/internal/service"
	"github.com/rs/zerolog/log"
)

// MaxUploadSize bounds the PDF accepted by UploadCourse.
const MaxUploadSize = 32 << 20

type CourseController struct {
	courseService service.CourseService
}

func NewCourseController(courseService service.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// UploadCourse godoc
// @Summary (Admin) Upload a course document
// @Description Upload a PDF whose text becomes the question synthesis source for the course.
// @Tags Admin - Courses
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Course name"
// @Param pdf formData file true "Course PDF"
// @Success 201 {object} dto.CourseUploadResponse "Course created"
// @Failure 400 {object} dto.ErrorResponse "Missing name or file, or unreadable PDF"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/courses [post]
func (c *CourseController) UploadCourse(ctx *gin.Context) {
	name := ctx.PostForm("name")
	fileHeader, err := ctx.FormFile("pdf")
	if err != nil {
		log.Warn().Err(err).Msg("Admin UploadCourse: missing pdf file")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "PDF file is required", Code: "invalid_input"})
		return
	}
	if fileHeader.Size > MaxUploadSize {
		ctx.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Message: "PDF file is too large", Code: "invalid_input"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Admin UploadCourse: failed to open upload")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Could not read uploaded file", Code: "invalid_input"})
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Admin UploadCourse: failed to read upload")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Could not read uploaded file", Code: "invalid_input"})
		return
	}

	resp, err := c.courseService.Upload(ctx.Request.Context(), name, fileHeader.Filename, raw)
	if err != nil {
		controller.RespondError(ctx, "UploadCourse", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListCourses godoc
// @Summary (Admin) List courses
// @Tags Admin - Courses
// @Produce json
// @Success 200 {array} dto.CourseSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, "ListCourses", err)
		return
	}
	ctx.JSON(http.StatusOK, courses)
}

// DownloadCourseDocument godoc
// @Summary (Admin) Download a course's uploaded PDF
// @Tags Admin - Courses
// @Produce application/pdf
// @Param course_id path int true "Course ID"
// @Success 200 {file} file "Course PDF"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course or document not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/courses/{course_id}/document [get]
func (c *CourseController) DownloadCourseDocument(ctx *gin.Context) {
	courseID, ok := controller.ParseIDParam(ctx, "course_id")
	if !ok {
		return
	}
	doc, err := c.courseService.GetDocument(ctx.Request.Context(), courseID)
	if err != nil {
		controller.RespondError(ctx, "DownloadCourseDocument", err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	ctx.Data(http.StatusOK, "application/pdf", doc.Content)
}
