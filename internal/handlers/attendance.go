package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campuslibrary/internal/services"
)

type AttendanceHandler struct {
	svc services.AttendanceService
}

type attendanceRequest struct {
	UserID   uint   `json:"user_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out"`
	Notes    string `json:"notes"`
}

type checkRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Notes  string `json:"notes"`
}

type checkStudentRequest struct {
	IDNumber string `json:"id_number" binding:"required"`
}

func (h *AttendanceHandler) index(c *gin.Context) {
	page, perPage := paging(c)

	var from, to *time.Time
	if c.Query("from_date") != "" && c.Query("to_date") != "" {
		f, err := parseDate(c.Query("from_date"))
		if err != nil {
			respondValidation(c, err)
			return
		}
		t, err := parseDate(c.Query("to_date"))
		if err != nil {
			respondValidation(c, err)
			return
		}
		from, to = &f, &t
	}

	result, err := h.svc.ListAttendance(c.Query("search"), from, to, page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AttendanceHandler) store(c *gin.Context) {
	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	date, checkIn, checkOut, err := parseAttendanceTimes(req)
	if err != nil {
		respondValidation(c, err)
		return
	}

	record, err := h.svc.CreateAttendance(req.UserID, date, checkIn, checkOut, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *AttendanceHandler) show(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	record, err := h.svc.GetAttendance(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *AttendanceHandler) update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	date, checkIn, checkOut, err := parseAttendanceTimes(req)
	if err != nil {
		respondValidation(c, err)
		return
	}

	record, err := h.svc.UpdateAttendance(id, date, checkIn, checkOut, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *AttendanceHandler) destroy(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteAttendance(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// check is the explicit check-in/out toggle: 201 on a new check-in, 200 when
// an open record is closed.
func (h *AttendanceHandler) check(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	record, checkedIn, err := h.svc.CheckInOut(req.UserID, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	action := "check-out"
	if checkedIn {
		status = http.StatusCreated
		action = "check-in"
	}
	c.JSON(status, gin.H{"action": action, "attendance": record})
}

// checkStudent resolves a student by id number. A scan that finds an open
// record closes it, so this endpoint mutates state.
func (h *AttendanceHandler) checkStudent(c *gin.Context) {
	var req checkStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	result, err := h.svc.CheckStudent(req.IDNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseAttendanceTimes(req attendanceRequest) (date, checkIn time.Time, checkOut *time.Time, err error) {
	date, err = parseDate(req.Date)
	if err != nil {
		return
	}
	checkIn, err = time.Parse(time.RFC3339, req.CheckIn)
	if err != nil {
		return
	}
	if req.CheckOut != "" {
		var out time.Time
		out, err = time.Parse(time.RFC3339, req.CheckOut)
		if err != nil {
			return
		}
		checkOut = &out
	}
	return
}
