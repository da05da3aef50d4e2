// internal/server/handlers_auth.go
package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"talenthub/internal/common/auth"
	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/validation"
	"talenthub/internal/models"
	"talenthub/internal/resume"
)

// ==========================================
// SIGNUP AND LOGIN
// ==========================================

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}
	if err := validation.Validate(validation.SignupSchema, &req); err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}

	// Company employees must appear on the roster while verification is on.
	if req.UserType == models.UserTypeCompanyEmployee {
		enabled, err := s.employees.VerificationEnabled(r.Context())
		if err != nil {
			s.errors.WriteHTTP(w, r, err)
			return
		}
		if enabled {
			verified, err := s.employees.Verify(r.Context(), req.EmployeeID, req.Email)
			if err != nil {
				s.errors.WriteHTTP(w, r, err)
				return
			}
			if !verified {
				s.errors.WriteHTTP(w, r, apperrors.NewEmployeeNotVerifiedError(req.EmployeeID))
				return
			}
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInternalError(err))
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		UserType:     req.UserType,
		Phone:        req.Phone,
	}
	switch req.UserType {
	case models.UserTypeCompanyEmployee:
		user.SourceID = strings.ToUpper(strings.TrimSpace(req.EmployeeID))
	case models.UserTypeFreelancer:
		year := time.Now().UTC().Year()
		seq, err := s.resumes.NextFreelancerSeq(r.Context(), year)
		if err != nil {
			s.errors.WriteHTTP(w, r, err)
			return
		}
		user.SourceID = resume.FreelancerID(year, seq)
	}
	if err := s.users.Create(r.Context(), user); err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}
	if err := validation.Validate(validation.LoginSchema, &req); err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}

	user, err := s.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		// Do not leak whether the account exists.
		s.errors.WriteHTTP(w, r, apperrors.NewAuthenticationError("invalid email or password"))
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.errors.WriteHTTP(w, r, apperrors.NewAuthenticationError("invalid email or password"))
		return
	}

	s.issueToken(w, r, user)
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.GoogleLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}
	if req.IDToken == "" {
		s.errors.WriteHTTP(w, r, apperrors.NewValidationError("id_token is required"))
		return
	}

	identity, err := s.google.Verify(r.Context(), req.IDToken)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}

	user, err := s.users.GetByEmail(r.Context(), identity.Email)
	if err != nil {
		// First Google sign-in auto-creates a guest-grade account.
		user = &models.User{
			Email:    identity.Email,
			FullName: strings.TrimSpace(identity.GivenName + " " + identity.FamilyName),
			UserType: models.UserTypeGmail,
		}
		if err := s.users.Create(r.Context(), user); err != nil {
			s.errors.WriteHTTP(w, r, err)
			return
		}
	}

	s.issueToken(w, r, user)
}

func (s *Server) issueToken(w http.ResponseWriter, r *http.Request, user *models.User) {
	token, expiresAt, err := s.auth.GenerateToken(user.Email, user.ID, user.UserType)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	now := time.Now().UTC()
	if err := s.users.RecordLogin(r.Context(), user.ID, now); err != nil {
		s.logger.Warn("failed to record login", map[string]interface{}{
			"error":  err,
			"userId": user.ID,
		})
	}
	user.LastLoginAt = &now

	writeJSON(w, http.StatusOK, models.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        user,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		s.errors.WriteHTTP(w, r, apperrors.NewAuthenticationError("missing bearer token"))
		return
	}
	if err := s.auth.Blacklist(r.Context(), token); err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "logged out"})
}

// ==========================================
// PASSWORD RESET
// ==========================================

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}

	// The response is identical whether or not the account exists.
	accepted := map[string]string{"detail": "If the email is registered, a reset code has been sent."}

	user, err := s.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeJSON(w, http.StatusOK, accepted)
		return
	}

	code, err := auth.GenerateResetCode()
	if err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInternalError(err))
		return
	}
	expiresAt := time.Now().UTC().Add(time.Duration(s.cfg.Auth.ResetCodeExpiry) * time.Minute)
	if err := s.resetTokens.Create(r.Context(), user.Email, code, expiresAt); err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	if err := s.mailer.SendResetCode(r.Context(), user.Email, code, s.cfg.Auth.ResetCodeExpiry); err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accepted)
}

func (s *Server) handleVerifyResetCode(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyResetCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}
	ok, err := s.resetTokens.Verify(r.Context(), req.Email, req.Code)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	if !ok {
		s.errors.WriteHTTP(w, r, apperrors.NewAuthenticationError("invalid or expired reset code"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}
	if len(req.NewPassword) < 8 {
		s.errors.WriteHTTP(w, r, apperrors.NewValidationError("password must be at least 8 characters"))
		return
	}
	if err := s.resetTokens.Consume(r.Context(), req.Email, req.Code); err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInternalError(err))
		return
	}
	if err := s.users.UpdatePassword(r.Context(), req.Email, hash); err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "password updated"})
}

// ==========================================
// PROFILE
// ==========================================

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	user, err := s.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	var req models.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}
	if err := s.users.UpdateProfile(r.Context(), claims.UserID, &req); err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	user, err := s.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewValidationError("file field is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInternalError(err))
		return
	}
	mime := header.Header.Get("Content-Type")
	if !strings.HasPrefix(mime, "image/") {
		s.errors.WriteHTTP(w, r, apperrors.NewUnsupportedFileTypeError(header.Filename))
		return
	}
	if err := s.users.UpdatePhoto(r.Context(), claims.UserID, data, mime); err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "photo updated"})
}

func (s *Server) handleGetPhoto(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	data, mime, err := s.users.GetPhoto(r.Context(), claims.UserID)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ==========================================
// ADMIN USER MANAGEMENT
// ==========================================

func (s *Server) handleInviteUser(w http.ResponseWriter, r *http.Request) {
	var req models.InviteUserRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}
	if req.Email == "" || req.UserType == "" {
		s.errors.WriteHTTP(w, r, apperrors.NewValidationError("email and user_type are required"))
		return
	}

	tempPassword, err := auth.GenerateTempPassword(s.cfg.Auth.TempPasswordSize)
	if err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInternalError(err))
		return
	}
	hash, err := auth.HashPassword(tempPassword)
	if err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInternalError(err))
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		UserType:     req.UserType,
		MustReset:    true,
	}
	if err := s.users.Create(r.Context(), user); err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}

	inviteToken, _, err := s.auth.GenerateToken(user.Email, user.ID, "invite")
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	if err := s.mailer.SendInvite(r.Context(), user.Email, user.FullName, tempPassword, inviteToken); err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}
