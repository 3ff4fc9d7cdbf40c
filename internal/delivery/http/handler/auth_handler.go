package handler

import (
	"errors"
	"net/http"

	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/usecase"
	"pharmacy-backend/pkg/response"
	"pharmacy-backend/pkg/validator"

	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
	log         *logrus.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
		log:         log,
	}
}

// Signup handles account registration
// @Summary Register a new account
// @Description Register with name, phone and password. Staff roles start unapproved.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	result, err := h.authUsecase.Signup(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPhoneAlreadyExists):
			response.BadRequest(w, "Phone number already registered")
		case errors.Is(err, usecase.ErrValidation):
			response.BadRequest(w, err.Error())
		default:
			h.log.Errorf("Signup failed: %+v", err)
			response.InternalServerError(w, "Failed to register account")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Account registered successfully", result)
}

// Login handles account login
// @Summary Login
// @Description Login with phone or email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	result, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid phone/email or password")
		case errors.Is(err, usecase.ErrPendingApproval):
			response.Forbidden(w, "Account is pending admin approval")
		case errors.Is(err, usecase.ErrValidation):
			response.BadRequest(w, err.Error())
		default:
			h.log.Errorf("Login failed: %+v", err)
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	response.Success(w, http.StatusOK, "Login successful", result)
}

// Me returns the authenticated account
// @Summary Get current account
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	accountID, ok := currentAccountID(w, r)
	if !ok {
		return
	}

	account, err := h.authUsecase.GetCurrentAccount(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, usecase.ErrAccountNotFound) {
			response.Unauthorized(w, "Account no longer exists")
			return
		}
		h.log.Errorf("Get current account failed: %+v", err)
		response.InternalServerError(w, "Failed to get account")
		return
	}

	response.Success(w, http.StatusOK, "Account retrieved successfully", account)
}

// UpdateMe updates the authenticated account's profile
// @Summary Update current account profile
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Update Profile Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [put]
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := currentAccountID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	account, err := h.authUsecase.UpdateProfile(r.Context(), accountID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrValidation):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrAccountNotFound):
			response.Unauthorized(w, "Account no longer exists")
		default:
			h.log.Errorf("Update profile failed: %+v", err)
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", account)
}

// ChangePassword re-hashes the authenticated account's password
// @Summary Change password
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/password [put]
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	accountID, ok := currentAccountID(w, r)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if err := h.authUsecase.ChangePassword(r.Context(), accountID, &req); err != nil {
		switch {
		case errors.Is(err, usecase.ErrWrongPassword):
			response.BadRequest(w, "Current password is incorrect")
		case errors.Is(err, usecase.ErrValidation):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrAccountNotFound):
			response.Unauthorized(w, "Account no longer exists")
		default:
			h.log.Errorf("Change password failed: %+v", err)
			response.InternalServerError(w, "Failed to change password")
		}
		return
	}

	response.Success(w, http.StatusOK, "Password changed successfully", nil)
}
