package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"warranty-service/internal/domain"
	"warranty-service/internal/service"
	"warranty-service/internal/session"

	log "github.com/sirupsen/logrus"
)

const sessionCookie = "warranty_session"

// WarrantyService is the workflow behind the HTTP surface.
type WarrantyService interface {
	Catalog() service.Catalog
	AddToCart(ctx context.Context, sess *domain.Session, product string, quantity int) error
	ResetCart(ctx context.Context, sess *domain.Session)
	Register(ctx context.Context, sess *domain.Session, req domain.RegistrationRequest) (int, error)
	Login(ctx context.Context, sess *domain.Session, shopID, passcode string) error
	Logout(ctx context.Context, sess *domain.Session)
	Lookup(ctx context.Context, sess *domain.Session, phone string) (domain.LookupResult, error)
	Redeem(ctx context.Context, sess *domain.Session, row int) error
}

type HTTPHandler struct {
	warranty WarrantyService
	sessions session.Store
}

func NewHTTPHandler(warranty WarrantyService, sessions session.Store) *HTTPHandler {
	return &HTTPHandler{warranty: warranty, sessions: sessions}
}

type sessionKey struct{}

func (h *HTTPHandler) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *domain.Session
		if c, err := r.Cookie(sessionCookie); err == nil {
			sess, err = h.sessions.Get(r.Context(), c.Value)
			if err != nil && !errors.Is(err, session.ErrSessionNotFound) {
				log.WithError(err).Error("Failed to load session")
			}
		}
		if sess == nil {
			sess = session.New()
		}
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	})
}

func sessionFrom(r *http.Request) *domain.Session {
	return r.Context().Value(sessionKey{}).(*domain.Session)
}

// save persists the session; it must run before the response is written.
func (h *HTTPHandler) save(w http.ResponseWriter, r *http.Request, sess *domain.Session) bool {
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		log.WithError(err).Error("Failed to save session")
		writeError(w, http.StatusInternalServerError, "session_unavailable", "session could not be saved", nil)
		return false
	}
	return true
}

type catalogResponse struct {
	Shops    []string `json:"shops"`
	Products []string `json:"products"`
}

func (h *HTTPHandler) catalog(w http.ResponseWriter, r *http.Request) {
	c := h.warranty.Catalog()
	writeSuccess(w, http.StatusOK, "catalog", catalogResponse{Shops: c.Shops, Products: c.Products})
}

func (h *HTTPHandler) viewCart(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "cart", sessionFrom(r).Cart)
}

type addToCartRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

func (h *HTTPHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sess := sessionFrom(r)
	if err := h.warranty.AddToCart(r.Context(), sess, req.Product, req.Quantity); err != nil {
		writeDomainError(w, err)
		return
	}
	if !h.save(w, r, sess) {
		return
	}
	writeSuccess(w, http.StatusOK, "item added", sess.Cart)
}

func (h *HTTPHandler) resetCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	h.warranty.ResetCart(r.Context(), sess)
	if !h.save(w, r, sess) {
		return
	}
	writeSuccess(w, http.StatusOK, "cart cleared", sess.Cart)
}

type registerRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Invoice      string `json:"invoice"`
	Shop         string `json:"shop"`
	PurchaseDate string `json:"purchase_date"`
}

type registerResponse struct {
	Units int `json:"units"`
}

func (h *HTTPHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	var purchaseDate time.Time
	if s := strings.TrimSpace(req.PurchaseDate); s != "" {
		d, err := time.Parse(domain.DateLayout, s)
		if err != nil {
			writeDomainError(w, &domain.ValidationError{Fields: []string{"purchase_date"}})
			return
		}
		purchaseDate = d
	}

	sess := sessionFrom(r)
	units, err := h.warranty.Register(r.Context(), sess, domain.RegistrationRequest{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Invoice:      req.Invoice,
		Shop:         req.Shop,
		PurchaseDate: purchaseDate,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	// The rows are stored; a lost session only leaves a stale cart behind.
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		log.WithError(err).WithField("invoice", req.Invoice).Warn("Registration stored but session not saved")
	}
	writeSuccess(w, http.StatusCreated, "registration complete", registerResponse{Units: units})
}

type loginRequest struct {
	Shop     string `json:"shop"`
	Passcode string `json:"passcode"`
}

func (h *HTTPHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sess := sessionFrom(r)
	if err := h.warranty.Login(r.Context(), sess, req.Shop, req.Passcode); err != nil {
		writeDomainError(w, err)
		return
	}
	if !h.save(w, r, sess) {
		return
	}
	writeSuccess(w, http.StatusOK, "logged in", map[string]string{"shop": sess.ShopID})
}

func (h *HTTPHandler) logout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	h.warranty.Logout(r.Context(), sess)
	if !h.save(w, r, sess) {
		return
	}
	writeSuccess(w, http.StatusOK, "logged out", nil)
}

type unitResponse struct {
	Row                    int    `json:"row"`
	Name                   string `json:"name"`
	Phone                  string `json:"phone"`
	Invoice                string `json:"invoice"`
	ProductDetail          string `json:"product_detail"`
	PurchaseDate           string `json:"purchase_date"`
	RegisteredAt           string `json:"registered_at"`
	Redeemed               bool   `json:"redeemed"`
	RedeemedBy             string `json:"redeemed_by,omitempty"`
	RedeemedAt             string `json:"redeemed_at,omitempty"`
	RedemptionDetailsKnown bool   `json:"redemption_details_known"`
}

type lookupResponse struct {
	Status string         `json:"status"`
	Units  []unitResponse `json:"units,omitempty"`
}

func toUnitResponse(rec domain.WarrantyRecord) unitResponse {
	return unitResponse{
		Row:                    rec.Row,
		Name:                   rec.Name,
		Phone:                  rec.Phone,
		Invoice:                rec.Invoice,
		ProductDetail:          rec.ProductDetail,
		PurchaseDate:           formatDate(rec.PurchaseDate),
		RegisteredAt:           formatDate(rec.RegisteredAt),
		Redeemed:               rec.IsRedeemed(),
		RedeemedBy:             rec.RedeemedBy,
		RedeemedAt:             formatDate(rec.RedeemedAt),
		RedemptionDetailsKnown: rec.RedemptionDetailsKnown(),
	}
}

func (h *HTTPHandler) lookup(w http.ResponseWriter, r *http.Request) {
	result, err := h.warranty.Lookup(r.Context(), sessionFrom(r), r.URL.Query().Get("phone"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := lookupResponse{Status: string(result.Status)}
	for _, rec := range result.Records {
		resp.Units = append(resp.Units, toUnitResponse(rec))
	}
	writeSuccess(w, http.StatusOK, "lookup", resp)
}

type redeemRequest struct {
	Row int `json:"row"`
}

func (h *HTTPHandler) redeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.warranty.Redeem(r.Context(), sessionFrom(r), req.Row); err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "redeemed", map[string]int{"row": req.Row})
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}
