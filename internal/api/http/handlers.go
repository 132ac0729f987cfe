package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/hireai/waitlist-manager/internal/analytics"
	"github.com/hireai/waitlist-manager/internal/api/http/response"
	"github.com/hireai/waitlist-manager/internal/dto"
	"github.com/hireai/waitlist-manager/internal/entity"
	gerr "github.com/hireai/waitlist-manager/internal/errors"
	"github.com/hireai/waitlist-manager/internal/form"
	clientid "github.com/hireai/waitlist-manager/internal/middleware"
)

type handlers struct {
	svc *Services
	now func() time.Time
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		response.Render(w, r, response.ErrInvalidRequest(err))
		return false
	}
	return true
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Health.Ping(r.Context()); err != nil {
		response.Error(w, r, fmt.Errorf("health check: %w", err))
		return
	}
	response.OK(w, r, http.StatusOK, "ok", nil)
}

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	var req form.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	meta := clientid.GetClientMeta(r.Context())
	if err := h.svc.Limiter.CheckRegistration(meta.IP); err != nil {
		response.Error(w, r, err)
		return
	}
	reg, err := h.svc.Waitlist.Register(r.Context(), &req, meta)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	msg := "Successfully joined the waitlist! Check your email for the verification code."
	if !reg.VerificationDispatched {
		msg = "Successfully joined the waitlist, but the verification code could not be sent. Please request a new one."
	}
	response.OK(w, r, http.StatusCreated, msg, reg)
}

func (h *handlers) verify(w http.ResponseWriter, r *http.Request) {
	var req form.VerifyRequest
	if !decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(w, r, err)
		return
	}
	if err := h.svc.Limiter.CheckVerification(clientid.GetClientIP(r.Context()), req.Email); err != nil {
		response.Error(w, r, err)
		return
	}
	e, err := h.svc.Verifier.Verify(r.Context(), req.Email, req.Code)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusOK, "Email verified successfully! You're on the waitlist.", map[string]any{
		"email":      e.Email,
		"isVerified": e.IsVerified,
	})
}

func (h *handlers) resend(w http.ResponseWriter, r *http.Request) {
	var req form.ResendRequest
	if !decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(w, r, err)
		return
	}
	if err := h.svc.Limiter.CheckResend(clientid.GetClientIP(r.Context()), req.Email); err != nil {
		response.Error(w, r, err)
		return
	}
	if err := h.svc.Verifier.Resend(r.Context(), req.Email); err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusOK, "Verification code resent successfully.", nil)
}

func (h *handlers) listEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Waitlist.List(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusOK, "", map[string]any{
		"count":   len(entries),
		"entries": dto.EntityWaitlistEntriesToDto(entries),
	})
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Waitlist.Stats(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusOK, "", st)
}

func (h *handlers) setStatus(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		response.Error(w, r, gerr.Validation([]gerr.FieldViolation{{Field: "email", Message: "Malformed email."}}))
		return
	}
	var req form.SetStatusRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.Waitlist.SetStatus(r.Context(), email, &req); err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusOK, "Status updated.", nil)
}

// daysParam reads the optional days query parameter. Zero means omitted.
func daysParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return 0, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > analytics.MaxWindowDays {
		return 0, gerr.Validation([]gerr.FieldViolation{{
			Field:   "days",
			Message: fmt.Sprintf("Must be an integer between 1 and %d.", analytics.MaxWindowDays),
		}})
	}
	return days, nil
}

func (h *handlers) summary(w http.ResponseWriter, r *http.Request) {
	days, err := daysParam(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	s, err := h.svc.Analytics.Summary(r.Context(), days)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusOK, "", s)
}

func (h *handlers) growth(w http.ResponseWriter, r *http.Request) {
	days, err := daysParam(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	points, err := h.svc.Analytics.GrowthSeries(r.Context(), days)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	if points == nil {
		points = []entity.GrowthPoint{}
	}
	response.OK(w, r, http.StatusOK, "", points)
}

func (h *handlers) breakdown(w http.ResponseWriter, r *http.Request) {
	field := entity.CategoryField(chi.URLParam(r, "field"))
	counts, err := h.svc.Analytics.CategoryBreakdown(r.Context(), field)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	if counts == nil {
		counts = []entity.CategoryCount{}
	}
	response.OK(w, r, http.StatusOK, "", counts)
}

func (h *handlers) painPoints(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Analytics.PainPointKeywords(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusOK, "", s)
}

// export buffers the CSV so an empty waitlist is still reported as JSON.
func (h *handlers) export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.Analytics.ExportSnapshot(r.Context(), &buf); err != nil {
		response.Error(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", analytics.ExportFilename(h.now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *handlers) archive(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Analytics.ArchiveExport(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusOK, "Export archived.", map[string]string{"url": u})
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req form.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.Limiter.CheckLogin(clientid.GetClientIP(r.Context()), form.NormalizeEmail(req.Email)); err != nil {
		response.Error(w, r, err)
		return
	}
	resp, err := h.svc.Auth.Login(r.Context(), &req)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusOK, "Logged in.", resp)
}

func (h *handlers) profile(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Auth.Profile(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusOK, "", a)
}

func (h *handlers) changePassword(w http.ResponseWriter, r *http.Request) {
	var req form.ChangePasswordRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.Auth.ChangePassword(r.Context(), &req); err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusOK, "Password changed.", nil)
}

func (h *handlers) listAdmins(w http.ResponseWriter, r *http.Request) {
	as, err := h.svc.Auth.ListAdmins(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusOK, "", as)
}

func (h *handlers) createAdmin(w http.ResponseWriter, r *http.Request) {
	var req form.CreateAdminRequest
	if !decode(w, r, &req) {
		return
	}
	a, err := h.svc.Auth.CreateAdmin(r.Context(), &req)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusCreated, "Admin created.", a)
}

func (h *handlers) setAdminActive(w http.ResponseWriter, r *http.Request) {
	var req form.SetActiveRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.Auth.SetAdminActive(r.Context(), chi.URLParam(r, "id"), &req); err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusOK, "Admin updated.", nil)
}
