package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kitaconnect/kita-admin/internal/http/middleware"
	"github.com/kitaconnect/kita-admin/internal/model"
	"github.com/kitaconnect/kita-admin/internal/repository"
	"github.com/kitaconnect/kita-admin/internal/service"
	"github.com/kitaconnect/kita-admin/internal/view"
)

type Handler struct {
	views   *service.ViewService
	exports *service.ExportService
	admin   *service.AdminService
	log     zerolog.Logger
}

func NewHandler(views *service.ViewService, exports *service.ExportService, admin *service.AdminService, log zerolog.Logger) *Handler {
	return &Handler{views: views, exports: exports, admin: admin, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/health", h.health)

	authed := router.Group("/")
	authed.Use(authMiddleware)
	authed.POST("/absences", h.createAbsence)

	admin := authed.Group("/admin")
	admin.GET("/children", h.listChildren)
	admin.GET("/guardians", h.listGuardians)
	admin.GET("/guardians/:id", h.getGuardian)
	admin.GET("/contracts", h.listContracts)
	admin.GET("/groups", h.listGroups)
	admin.GET("/bookings", h.listBookings)
	admin.GET("/occupancy", h.occupancy)
	admin.GET("/staff", h.listStaff)
	admin.GET("/shifts", h.listShifts)
	admin.GET("/leave", h.listLeave)
	admin.GET("/absences", h.listAbsences)
	admin.GET("/announcements", h.listAnnouncements)
	admin.GET("/events", h.listEvents)
	admin.GET("/diary", h.listDiary)

	admin.POST("/export", h.export)
	admin.POST("/export/occupancy", h.exportOccupancy)

	admin.POST("/guardians", h.createGuardian)
	admin.PUT("/guardians/:id", h.updateGuardian)
	admin.POST("/children", h.createChild)
	admin.PUT("/children/:id", h.updateChild)
	admin.POST("/contracts", h.createContract)
	admin.PUT("/contracts/:id", h.updateContract)
	admin.POST("/bookings", h.createBooking)
	admin.POST("/staff", h.createStaff)
	admin.POST("/shifts", h.createShift)
	admin.POST("/leave", h.createLeave)
	admin.POST("/announcements", h.createAnnouncement)
	admin.POST("/events", h.createEvent)
	admin.POST("/diary", h.createDiaryEntry)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) listChildren(c *gin.Context) {
	if _, ok := h.managePrincipal(c); !ok {
		return
	}

	filter := childFilterFromQuery(c)
	sortState := sortFromQuery(c)

	rows, err := h.views.ChildRows(c.Request.Context(), filter, sortState)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows, "total": len(rows)})
}

func (h *Handler) listGuardians(c *gin.Context) {
	if _, ok := h.managePrincipal(c); !ok {
		return
	}
	guardians, err := h.views.Guardians(c.Request.Context(), view.GuardianFilter{Query: c.Query("q")})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"guardians": guardians, "total": len(guardians)})
}

func (h *Handler) getGuardian(c *gin.Context) {
	if _, ok := h.managePrincipal(c); !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	guardian, err := h.views.Guardian(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, guardian)
}

func (h *Handler) listContracts(c *gin.Context) {
	if _, ok := h.managePrincipal(c); !ok {
		return
	}
	filter := view.ContractFilter{Query: c.Query("q"), Status: c.Query("status")}
	rows, err := h.views.ContractRows(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contracts": rows, "total": len(rows)})
}

func (h *Handler) listGroups(c *gin.Context) {
	if _, ok := h.managePrincipal(c); !ok {
		return
	}
	groups, err := h.views.Groups(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (h *Handler) listBookings(c *gin.Context) {
	if _, ok := h.managePrincipal(c); !ok {
		return
	}
	rng, err := rangeFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bookings, err := h.views.Bookings(c.Request.Context(), rng)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "total": len(bookings)})
}

func (h *Handler) occupancy(c *gin.Context) {
	if _, ok := h.managePrincipal(c); !ok {
		return
	}
	rng, err := rangeFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	plan, err := h.views.OccupancyPlan(c.Request.Context(), rng)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *Handler) listStaff(c *gin.Context) {
	if _, ok := h.managePrincipal(c); !ok {
		return
	}
	staff, err := h.views.Staff(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff})
}

func (h *Handler) listShifts(c *gin.Context) {
	if _, ok := h.managePrincipal(c); !ok {
		return
	}
	rng, err := rangeFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	shifts, err := h.views.Shifts(c.Request.Context(), rng)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": shifts})
}

func (h *Handler) listLeave(c *gin.Context) {
	if _, ok := h.managePrincipal(c); !ok {
		return
	}
	rng, err := rangeFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	leave, err := h.views.Leave(c.Request.Context(), rng)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leave": leave})
}

func (h *Handler) listAbsences(c *gin.Context) {
	if _, ok := h.managePrincipal(c); !ok {
		return
	}
	rng, err := rangeFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	absences, err := h.views.Absences(c.Request.Context(), rng)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"absences": absences})
}

func (h *Handler) listAnnouncements(c *gin.Context) {
	if _, ok := h.managePrincipal(c); !ok {
		return
	}
	announcements, err := h.views.Announcements(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": announcements})
}

func (h *Handler) listEvents(c *gin.Context) {
	if _, ok := h.managePrincipal(c); !ok {
		return
	}
	rng, err := rangeFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	events, err := h.views.Events(c.Request.Context(), rng)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *Handler) listDiary(c *gin.Context) {
	if _, ok := h.managePrincipal(c); !ok {
		return
	}
	rng, err := rangeFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entries, err := h.views.DiaryEntries(c.Request.Context(), rng)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

type exportRequest struct {
	Tab    string `json:"tab" binding:"required"`
	Format string `json:"format" binding:"required"`

	Query  string `json:"query"`
	Status string `json:"status"`

	Filters       map[string]string `json:"filters"`
	SortColumn    string            `json:"sort_column"`
	SortDirection string            `json:"sort_direction"`

	// Date range for the xlsx occupancy workbook.
	From *string `json:"from"`
	To   *string `json:"to"`
}

func (h *Handler) export(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	format := service.Format(strings.ToLower(strings.TrimSpace(req.Format)))
	if format == service.FormatXLSX {
		from, err := parseOptionalDate(req.From)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
			return
		}
		to, err := parseOptionalDate(req.To)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
			return
		}
		file, err := h.exports.ExportOccupancy(c.Request.Context(), principal, repository.DateRange{From: from, To: to})
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=\""+file.Name+"\"")
		c.Data(http.StatusOK, file.MIME, file.Content)
		return
	}

	input := service.ExportInput{
		Principal:      principal,
		Tab:            service.Tab(strings.ToLower(strings.TrimSpace(req.Tab))),
		Format:         format,
		ChildFilter:    childFilterFromMap(req.Filters),
		GuardianFilter: view.GuardianFilter{Query: req.Query},
		ContractFilter: view.ContractFilter{Query: req.Query, Status: req.Status},
		Sort: view.Sort{
			Column:    req.SortColumn,
			Direction: view.Direction(req.SortDirection),
		},
	}

	file, err := h.exports.Export(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+file.Name+"\"")
	c.Data(http.StatusOK, file.MIME, file.Content)
}

func (h *Handler) exportOccupancy(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	rng, err := rangeFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	file, err := h.exports.ExportOccupancy(c.Request.Context(), principal, rng)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+file.Name+"\"")
	c.Data(http.StatusOK, file.MIME, file.Content)
}

type guardianRequest struct {
	FirstName      string  `json:"first_name" binding:"required"`
	LastName       string  `json:"last_name" binding:"required"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	PhoneSecondary *string `json:"phone_secondary"`
	AddressStreet  *string `json:"address_street"`
	AddressZip     *string `json:"address_zip"`
	AddressCity    *string `json:"address_city"`
	Notes          *string `json:"notes"`
}

func (req guardianRequest) toModel(id uuid.UUID) model.Guardian {
	return model.Guardian{
		ID:             id,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		PhoneSecondary: req.PhoneSecondary,
		AddressStreet:  req.AddressStreet,
		AddressZip:     req.AddressZip,
		AddressCity:    req.AddressCity,
		Notes:          req.Notes,
	}
}

func (h *Handler) createGuardian(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	var req guardianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.admin.CreateGuardian(c.Request.Context(), principal, req.toModel(uuid.Nil))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) updateGuardian(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req guardianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.admin.UpdateGuardian(c.Request.Context(), principal, req.toModel(id)); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

type childRequest struct {
	FirstName         string   `json:"first_name" binding:"required"`
	LastName          string   `json:"last_name" binding:"required"`
	BirthDate         string   `json:"birth_date" binding:"required"`
	GroupID           *string  `json:"group_id"`
	PrimaryGuardianID *string  `json:"primary_guardian_id"`
	PhotoPermission   bool     `json:"photo_permission"`
	Allergies         []string `json:"allergies"`
	AvatarURL         *string  `json:"avatar_url"`
}

func (req childRequest) toModel(id uuid.UUID) (model.Child, error) {
	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return model.Child{}, err
	}
	groupID, err := parseOptionalUUID(req.GroupID)
	if err != nil {
		return model.Child{}, err
	}
	guardianID, err := parseOptionalUUID(req.PrimaryGuardianID)
	if err != nil {
		return model.Child{}, err
	}
	return model.Child{
		ID:                id,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		BirthDate:         birthDate,
		GroupID:           groupID,
		PrimaryGuardianID: guardianID,
		PhotoPermission:   req.PhotoPermission,
		Allergies:         req.Allergies,
		AvatarURL:         req.AvatarURL,
	}, nil
}

func (h *Handler) createChild(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	var req childRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	child, err := req.toModel(uuid.Nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.admin.CreateChild(c.Request.Context(), principal, child)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) updateChild(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req childRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	child, err := req.toModel(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.admin.UpdateChild(c.Request.Context(), principal, child); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

type contractRequest struct {
	ContractNumber  *string  `json:"contract_number"`
	ChildID         string   `json:"child_id" binding:"required"`
	GuardianID      string   `json:"guardian_id" binding:"required"`
	ContractType    string   `json:"contract_type" binding:"required"`
	Status          string   `json:"status" binding:"required"`
	StartDate       string   `json:"start_date" binding:"required"`
	EndDate         *string  `json:"end_date"`
	MonthlyFee      *float64 `json:"monthly_fee"`
	MealFee         *float64 `json:"meal_fee"`
	SubsidyAmount   *float64 `json:"subsidy_amount"`
	DiscountPercent *float64 `json:"discount_percent"`
	AdditionalFees  *float64 `json:"additional_fees"`
	Notes           *string  `json:"notes"`
}

func (req contractRequest) toModel(id uuid.UUID) (model.Contract, error) {
	childID, err := uuid.Parse(req.ChildID)
	if err != nil {
		return model.Contract{}, err
	}
	guardianID, err := uuid.Parse(req.GuardianID)
	if err != nil {
		return model.Contract{}, err
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return model.Contract{}, err
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return model.Contract{}, err
	}
	return model.Contract{
		ID:              id,
		ContractNumber:  req.ContractNumber,
		ChildID:         childID,
		GuardianID:      guardianID,
		ContractType:    model.ContractType(req.ContractType),
		Status:          model.ContractStatus(req.Status),
		StartDate:       startDate,
		EndDate:         endDate,
		MonthlyFee:      req.MonthlyFee,
		MealFee:         req.MealFee,
		SubsidyAmount:   req.SubsidyAmount,
		DiscountPercent: req.DiscountPercent,
		AdditionalFees:  req.AdditionalFees,
		Notes:           req.Notes,
	}, nil
}

func (h *Handler) createContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	contract, err := req.toModel(uuid.Nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.admin.CreateContract(c.Request.Context(), principal, contract)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) updateContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	contract, err := req.toModel(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.admin.UpdateContract(c.Request.Context(), principal, contract); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

type bookingRequest struct {
	ChildID    string  `json:"child_id" binding:"required"`
	ContractID *string `json:"contract_id"`
	GroupID    *string `json:"group_id"`
	Date       string  `json:"date" binding:"required"`
	StartTime  string  `json:"start_time" binding:"required"`
	EndTime    string  `json:"end_time" binding:"required"`
	IsExtra    bool    `json:"is_extra"`
	Notes      *string `json:"notes"`
}

func (h *Handler) createBooking(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	childID, err := uuid.Parse(req.ChildID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid child_id"})
		return
	}
	contractID, err := parseOptionalUUID(req.ContractID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract_id"})
		return
	}
	groupID, err := parseOptionalUUID(req.GroupID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group_id"})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	id, err := h.admin.CreateBooking(c.Request.Context(), principal, model.ChildBooking{
		ChildID:    childID,
		ContractID: contractID,
		GroupID:    groupID,
		Date:       date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		IsExtra:    req.IsExtra,
		Notes:      req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type staffRequest struct {
	FirstName       string   `json:"first_name" binding:"required"`
	LastName        string   `json:"last_name" binding:"required"`
	Email           *string  `json:"email"`
	Phone           *string  `json:"phone"`
	Position        *string  `json:"position"`
	WeeklyHours     *float64 `json:"weekly_hours"`
	HourlyRate      *float64 `json:"hourly_rate"`
	EmploymentStart *string  `json:"employment_start"`
	EmploymentEnd   *string  `json:"employment_end"`
	IsActive        *bool    `json:"is_active"`
	Notes           *string  `json:"notes"`
}

func (h *Handler) createStaff(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	var req staffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := parseOptionalDate(req.EmploymentStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employment_start"})
		return
	}
	end, err := parseOptionalDate(req.EmploymentEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employment_end"})
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	id, err := h.admin.CreateStaff(c.Request.Context(), principal, model.Staff{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		Position:        req.Position,
		WeeklyHours:     req.WeeklyHours,
		HourlyRate:      req.HourlyRate,
		EmploymentStart: start,
		EmploymentEnd:   end,
		IsActive:        active,
		Notes:           req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type shiftRequest struct {
	StaffID      string  `json:"staff_id" binding:"required"`
	GroupID      *string `json:"group_id"`
	Date         string  `json:"date" binding:"required"`
	StartTime    string  `json:"start_time" binding:"required"`
	EndTime      string  `json:"end_time" binding:"required"`
	ShiftType    string  `json:"shift_type" binding:"required"`
	BreakMinutes int     `json:"break_minutes"`
	Notes        *string `json:"notes"`
}

func (h *Handler) createShift(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	var req shiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff_id"})
		return
	}
	groupID, err := parseOptionalUUID(req.GroupID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group_id"})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	id, err := h.admin.CreateShift(c.Request.Context(), principal, model.StaffShift{
		StaffID:      staffID,
		GroupID:      groupID,
		Date:         date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		ShiftType:    model.ShiftType(req.ShiftType),
		BreakMinutes: req.BreakMinutes,
		Notes:        req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type leaveRequest struct {
	StaffID   string  `json:"staff_id" binding:"required"`
	LeaveType string  `json:"leave_type" binding:"required"`
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
	Approved  bool    `json:"approved"`
	Notes     *string `json:"notes"`
}

func (h *Handler) createLeave(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	var req leaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff_id"})
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}
	id, err := h.admin.CreateLeave(c.Request.Context(), principal, model.StaffLeave{
		StaffID:   staffID,
		LeaveType: model.LeaveType(req.LeaveType),
		StartDate: start,
		EndDate:   end,
		Approved:  req.Approved,
		Notes:     req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type absenceRequest struct {
	ChildID   string  `json:"child_id" binding:"required"`
	Type      string  `json:"type" binding:"required"`
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
	Note      *string `json:"note"`
}

func (h *Handler) createAbsence(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	var req absenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	childID, err := uuid.Parse(req.ChildID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid child_id"})
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}
	id, err := h.admin.CreateAbsence(c.Request.Context(), principal, model.Absence{
		ChildID:   childID,
		Type:      model.AbsenceType(req.Type),
		StartDate: start,
		EndDate:   end,
		Note:      req.Note,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type announcementRequest struct {
	Title       string  `json:"title" binding:"required"`
	Content     string  `json:"content" binding:"required"`
	Author      string  `json:"author"`
	Important   bool    `json:"important"`
	PublishedAt *string `json:"published_at"`
}

func (h *Handler) createAnnouncement(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	publishedAt, err := parseOptionalDate(req.PublishedAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid published_at"})
		return
	}
	id, err := h.admin.CreateAnnouncement(c.Request.Context(), principal, model.Announcement{
		Title:       req.Title,
		Content:     req.Content,
		Author:      req.Author,
		Important:   req.Important,
		PublishedAt: publishedAt,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type eventRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     *string `json:"end_date"`
	AllDay      bool    `json:"all_day"`
	Type        string  `json:"type" binding:"required"`
}

func (h *Handler) createEvent(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	end, err := parseOptionalDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}
	id, err := h.admin.CreateEvent(c.Request.Context(), principal, model.CalendarEvent{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		AllDay:      req.AllDay,
		Type:        model.EventType(req.Type),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type diaryRequest struct {
	GroupID string   `json:"group_id" binding:"required"`
	Date    string   `json:"date" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Author  string   `json:"author"`
	Photos  []string `json:"photos"`
}

func (h *Handler) createDiaryEntry(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	var req diaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group_id"})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	id, err := h.admin.CreateDiaryEntry(c.Request.Context(), principal, model.DiaryEntry{
		GroupID: groupID,
		Date:    date,
		Content: req.Content,
		Author:  req.Author,
		Photos:  req.Photos,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// managePrincipal resolves the principal and rejects roles without back
// office access.
func (h *Handler) managePrincipal(c *gin.Context) (model.Principal, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return model.Principal{}, false
	}
	if !principal.CanManage() {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
		return model.Principal{}, false
	}
	return principal, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func childFilterFromQuery(c *gin.Context) view.ChildFilter {
	return view.ChildFilter{
		GuardianLastName:  c.Query("guardian_last_name"),
		GuardianFirstName: c.Query("guardian_first_name"),
		ChildFirstName:    c.Query("child_first_name"),
		AddressExtra:      c.Query("address_extra"),
		BirthDate:         c.Query("birth_date"),
		Street:            c.Query("street"),
		Zip:               c.Query("zip"),
		City:              c.Query("city"),
		Phone:             c.Query("phone"),
		PhoneSecondary:    c.Query("phone_secondary"),
		PhoneWork:         c.Query("phone_work"),
		Email:             c.Query("email"),
		Group:             c.Query("group"),
		Exit:              view.ExitFilter(c.DefaultQuery("exit", "all")),
	}
}

func childFilterFromMap(filters map[string]string) view.ChildFilter {
	get := func(key string) string { return filters[key] }
	exit := view.ExitFilter(get("exit"))
	if exit == "" {
		exit = view.ExitFilterAll
	}
	return view.ChildFilter{
		GuardianLastName:  get("guardian_last_name"),
		GuardianFirstName: get("guardian_first_name"),
		ChildFirstName:    get("child_first_name"),
		AddressExtra:      get("address_extra"),
		BirthDate:         get("birth_date"),
		Street:            get("street"),
		Zip:               get("zip"),
		City:              get("city"),
		Phone:             get("phone"),
		PhoneSecondary:    get("phone_secondary"),
		PhoneWork:         get("phone_work"),
		Email:             get("email"),
		Group:             get("group"),
		Exit:              exit,
	}
}

func sortFromQuery(c *gin.Context) view.Sort {
	return view.Sort{
		Column:    c.Query("sort_column"),
		Direction: view.Direction(c.Query("sort_direction")),
	}
}

func rangeFromQuery(c *gin.Context) (repository.DateRange, error) {
	var rng repository.DateRange
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			return rng, errors.New("invalid from")
		}
		rng.From = &from
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			return rng, errors.New("invalid to")
		}
		rng.To = &to
	}
	return rng, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := parseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
