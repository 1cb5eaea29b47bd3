package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campuslibrary/internal/services"
)

type UserHandler struct {
	svc services.UserService
}

type registerRequest struct {
	Email                string `json:"email" binding:"required,email,max=255"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	FirstName            string `json:"first_name" binding:"required"`
	MiddleName           string `json:"middle_name"`
	LastName             string `json:"last_name" binding:"required"`
	IDNumber             string `json:"id_number" binding:"required"`
	Course               string `json:"course" binding:"required"`
	YearLevel            string `json:"year_level" binding:"required"`
	Gender               string `json:"gender" binding:"required"`
	ContactNumber        string `json:"contact_number" binding:"required"`
	ProfilePicture       string `json:"profile_picture"`
	Birthday             string `json:"birthday" binding:"required"`
	Role                 string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	FirstName      *string `json:"first_name" binding:"omitempty,max=255"`
	MiddleName     *string `json:"middle_name" binding:"omitempty,max=255"`
	LastName       *string `json:"last_name" binding:"omitempty,max=255"`
	ContactNumber  *string `json:"contact_number" binding:"omitempty,max=255"`
	Password       *string `json:"password" binding:"omitempty,min=8"`
	ProfilePicture *string `json:"profile_picture"`
}

func (h *UserHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	birthday, err := parseDatePtr(req.Birthday)
	if err != nil {
		respondValidation(c, err)
		return
	}

	user, token, err := h.svc.Register(c.Request.Context(), services.RegisterInput{
		Email:          req.Email,
		Password:       req.Password,
		FirstName:      req.FirstName,
		MiddleName:     req.MiddleName,
		LastName:       req.LastName,
		IDNumber:       req.IDNumber,
		Course:         req.Course,
		YearLevel:      req.YearLevel,
		Gender:         req.Gender,
		ContactNumber:  req.ContactNumber,
		ProfilePicture: req.ProfilePicture,
		Birthday:       birthday,
		Role:           req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"user":       user,
		"token":      token,
		"token_type": "Bearer",
	})
}

func (h *UserHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":       user,
		"token":      token,
		"token_type": "Bearer",
	})
}

func (h *UserHandler) logout(c *gin.Context) {
	token := c.GetString("sessionToken")
	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *UserHandler) current(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (h *UserHandler) listStudents(c *gin.Context) {
	page, perPage := paging(c)
	result, err := h.svc.ListStudents(c.Query("search"), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *UserHandler) show(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	user, err := h.svc.GetUser(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, err := h.svc.UpdateUser(id, services.UpdateUserInput{
		FirstName:      req.FirstName,
		MiddleName:     req.MiddleName,
		LastName:       req.LastName,
		ContactNumber:  req.ContactNumber,
		Password:       req.Password,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user,
	})
}

func (h *UserHandler) destroy(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteUser(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
