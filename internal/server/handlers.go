package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/username/plant-hire-calculator/internal/billing"
	"github.com/username/plant-hire-calculator/internal/calendar"
	"github.com/username/plant-hire-calculator/internal/hire"
	"github.com/username/plant-hire-calculator/pkg/dateutil"
	"go.uber.org/zap"
)

// API serves the hire session and the billing engine over HTTP
type API struct {
	manager  *hire.Manager
	calendar calendar.Calendar
	metrics  *Metrics
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAPI creates the API handlers; a nil calendar uses the statutory rules
func NewAPI(manager *hire.Manager, cal calendar.Calendar, metrics *Metrics, logger *zap.Logger) *API {
	if cal == nil {
		cal = calendar.NewComputedCalendar()
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &API{
		manager:  manager,
		calendar: cal,
		metrics:  metrics,
		validate: validate,
		logger:   logger,
	}
}

// Routes mounts the API under /api/v1
func (a *API) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/holidays/{year}", a.holidays)
		r.Post("/rates/derive", a.deriveRates)

		r.Get("/month", a.getMonth)
		r.Put("/month", a.setMonth)
		r.Post("/month/next", a.nextMonth)
		r.Post("/month/prev", a.prevMonth)

		r.Get("/equipment", a.listEquipment)
		r.Post("/equipment", a.addEquipment)
		r.Route("/equipment/{id}", func(r chi.Router) {
			r.Delete("/", a.removeEquipment)
			r.Put("/rates", a.updateRates)
			r.Post("/rates/reset", a.resetRates)
			r.Put("/idle-days", a.updateIdleDays)
			r.Post("/idle-days/toggle", a.toggleIdleDays)
			r.Get("/invoice", a.invoice)
		})

		r.Get("/invoices", a.invoices)
		r.Post("/invoices/preview", a.previewInvoices)
	})
}

func (a *API) log(r *http.Request, op string) *zap.Logger {
	return a.logger.With(
		zap.String("op", op),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func respond(w http.ResponseWriter, r *http.Request, status int, body Response) {
	render.Status(r, status)
	render.JSON(w, r, body)
}

// decode reads a JSON body into req and validates it.
// It writes the error reply itself and reports whether handling may continue.
func (a *API) decode(w http.ResponseWriter, r *http.Request, log *zap.Logger, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn("Failed to decode request body", zap.Error(err))
		respond(w, r, http.StatusBadRequest, Error("invalid request body"))
		return false
	}

	if err := a.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			log.Warn("Validation failed", zap.Error(err))
			respond(w, r, http.StatusUnprocessableEntity, ValidationError(verrs))
			return false
		}
		log.Error("Validator failed", zap.Error(err))
		respond(w, r, http.StatusInternalServerError, Error("internal error"))
		return false
	}
	return true
}

// fail maps session errors to status codes
func fail(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, hire.ErrEquipmentNotFound):
		respond(w, r, http.StatusNotFound, Error("equipment not found"))
	case errors.Is(err, hire.ErrInvalidEquipment),
		errors.Is(err, hire.ErrUnknownPreset),
		errors.Is(err, hire.ErrInvalidMonth):
		respond(w, r, http.StatusBadRequest, Error(err.Error()))
	default:
		log.Error("Request failed", zap.Error(err))
		respond(w, r, http.StatusInternalServerError, Error("internal error"))
	}
}

// persist saves the session after a mutation; failures are logged, not returned
func (a *API) persist(log *zap.Logger) {
	if err := a.manager.Save(); err != nil {
		log.Error("Failed to save session", zap.Error(err))
	}
	if a.metrics != nil {
		a.metrics.SetEquipmentItems(len(a.manager.Equipment()))
	}
}

func (a *API) countInvoices(n int) {
	if a.metrics != nil {
		a.metrics.InvoicesBuilt(n)
	}
}

type holidayView struct {
	Date     string `json:"date"`
	Name     string `json:"name"`
	Weekday  string `json:"weekday"`
	Observed bool   `json:"observed,omitempty"`
}

func (a *API) holidays(w http.ResponseWriter, r *http.Request) {
	log := a.log(r, "server.holidays")

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 || year > 9999 {
		log.Warn("Invalid year", zap.String("year", chi.URLParam(r, "year")))
		respond(w, r, http.StatusBadRequest, Error("invalid year"))
		return
	}

	holidays := a.calendar.Holidays(year)
	sort.SliceStable(holidays, func(i, j int) bool { return holidays[i].Date.Before(holidays[j].Date) })

	views := make([]holidayView, 0, len(holidays))
	for _, h := range holidays {
		views = append(views, holidayView{
			Date:     h.Date.Format("2006-01-02"),
			Name:     h.Name,
			Weekday:  h.Date.Weekday().String(),
			Observed: h.Observed,
		})
	}

	respond(w, r, http.StatusOK, OK(map[string]any{
		"year":     year,
		"easter":   calendar.EasterSunday(year).Format("2006-01-02"),
		"holidays": views,
	}))
}

type deriveRatesRequest struct {
	Base any `json:"base"`
}

func (a *API) deriveRates(w http.ResponseWriter, r *http.Request) {
	log := a.log(r, "server.deriveRates")

	var req deriveRatesRequest
	if !a.decode(w, r, log, &req) {
		return
	}

	respond(w, r, http.StatusOK, OK(billing.DeriveRatesFrom(req.Base)))
}

type monthView struct {
	Month           string `json:"month"`
	Days            int    `json:"days"`
	Weekdays        int    `json:"weekdays"`
	Saturdays       int    `json:"saturdays"`
	SundaysHolidays int    `json:"sundays_holidays"`
	Holidays        int    `json:"holidays"`
}

func (a *API) monthView() monthView {
	info := a.manager.MonthInfo()
	return monthView{
		Month:           dateutil.FormatMonth(info.Year, info.Month),
		Days:            len(info.Days),
		Weekdays:        info.Weekdays,
		Saturdays:       info.Saturdays,
		SundaysHolidays: info.SundaysHolidays,
		Holidays:        info.Holidays,
	}
}

func (a *API) getMonth(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, OK(a.monthView()))
}

type setMonthRequest struct {
	Month string `json:"month" validate:"required"`
}

func (a *API) setMonth(w http.ResponseWriter, r *http.Request) {
	log := a.log(r, "server.setMonth")

	var req setMonthRequest
	if !a.decode(w, r, log, &req) {
		return
	}

	year, month, err := dateutil.ParseMonth(req.Month)
	if err != nil {
		log.Warn("Invalid month", zap.String("month", req.Month))
		respond(w, r, http.StatusBadRequest, Error("invalid month, want YYYY-MM"))
		return
	}
	if err := a.manager.SetMonth(year, month); err != nil {
		fail(w, r, log, err)
		return
	}

	a.persist(log)
	respond(w, r, http.StatusOK, OK(a.monthView()))
}

func (a *API) nextMonth(w http.ResponseWriter, r *http.Request) {
	a.manager.NextMonth()
	a.persist(a.log(r, "server.nextMonth"))
	respond(w, r, http.StatusOK, OK(a.monthView()))
}

func (a *API) prevMonth(w http.ResponseWriter, r *http.Request) {
	a.manager.PrevMonth()
	a.persist(a.log(r, "server.prevMonth"))
	respond(w, r, http.StatusOK, OK(a.monthView()))
}

func (a *API) listEquipment(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, OK(a.manager.Equipment()))
}

type addEquipmentRequest struct {
	Name     string `json:"name" validate:"max=100"`
	Preset   string `json:"preset" validate:"max=100"`
	BaseRate any    `json:"base_rate"`
}

func (a *API) addEquipment(w http.ResponseWriter, r *http.Request) {
	log := a.log(r, "server.addEquipment")

	var req addEquipmentRequest
	if !a.decode(w, r, log, &req) {
		return
	}

	var (
		item billing.Equipment
		err  error
	)
	if req.Preset != "" {
		item, err = a.manager.AddPreset(req.Preset)
	} else {
		item, err = a.manager.AddEquipment(req.Name, req.BaseRate)
	}
	if err != nil {
		fail(w, r, log, err)
		return
	}

	a.persist(log)
	respond(w, r, http.StatusCreated, OK(item))
}

func (a *API) removeEquipment(w http.ResponseWriter, r *http.Request) {
	log := a.log(r, "server.removeEquipment")

	if err := a.manager.RemoveEquipment(chi.URLParam(r, "id")); err != nil {
		fail(w, r, log, err)
		return
	}

	a.persist(log)
	respond(w, r, http.StatusOK, OK(nil))
}

type ratesRequest struct {
	Weekday  float64 `json:"weekday" validate:"gte=0"`
	Saturday float64 `json:"saturday" validate:"gte=0"`
	Sunday   float64 `json:"sunday" validate:"gte=0"`
}

func (a *API) updateRates(w http.ResponseWriter, r *http.Request) {
	log := a.log(r, "server.updateRates")

	var req ratesRequest
	if !a.decode(w, r, log, &req) {
		return
	}

	item, err := a.manager.UpdateRates(chi.URLParam(r, "id"), billing.Rates{
		Weekday:  req.Weekday,
		Saturday: req.Saturday,
		Sunday:   req.Sunday,
	})
	if err != nil {
		fail(w, r, log, err)
		return
	}

	a.persist(log)
	respond(w, r, http.StatusOK, OK(item))
}

func (a *API) resetRates(w http.ResponseWriter, r *http.Request) {
	log := a.log(r, "server.resetRates")

	item, err := a.manager.ResetRates(chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, log, err)
		return
	}

	a.persist(log)
	respond(w, r, http.StatusOK, OK(item))
}

type idleDaysRequest struct {
	Dates billing.DateSet `json:"dates"`
}

func (a *API) updateIdleDays(w http.ResponseWriter, r *http.Request) {
	log := a.log(r, "server.updateIdleDays")

	var req idleDaysRequest
	if !a.decode(w, r, log, &req) {
		return
	}

	item, err := a.manager.UpdateIdleDays(chi.URLParam(r, "id"), req.Dates)
	if err != nil {
		fail(w, r, log, err)
		return
	}

	a.persist(log)
	respond(w, r, http.StatusOK, OK(item))
}

type toggleIdleRequest struct {
	Date     string `json:"date"`
	Weekday  string `json:"weekday" validate:"omitempty,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Holidays bool   `json:"holidays"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func (a *API) toggleIdleDays(w http.ResponseWriter, r *http.Request) {
	log := a.log(r, "server.toggleIdleDays")
	id := chi.URLParam(r, "id")

	var req toggleIdleRequest
	if !a.decode(w, r, log, &req) {
		return
	}

	selectors := 0
	for _, set := range []bool{req.Date != "", req.Weekday != "", req.Holidays} {
		if set {
			selectors++
		}
	}
	if selectors != 1 {
		respond(w, r, http.StatusBadRequest, Error("exactly one of date, weekday or holidays is required"))
		return
	}

	var (
		item billing.Equipment
		err  error
	)
	switch {
	case req.Date != "":
		date, perr := dateutil.ParseDate(req.Date)
		if perr != nil {
			respond(w, r, http.StatusBadRequest, Error("invalid date"))
			return
		}
		item, err = a.manager.ToggleIdleDate(id, date)
	case req.Weekday != "":
		item, err = a.manager.ToggleIdleWeekday(id, weekdays[req.Weekday])
	default:
		item, err = a.manager.ToggleIdleHolidays(id)
	}
	if err != nil {
		fail(w, r, log, err)
		return
	}

	a.persist(log)
	respond(w, r, http.StatusOK, OK(item))
}

type invoiceView struct {
	billing.Invoice
	TotalFormatted string `json:"total_formatted"`
}

func newInvoiceView(inv billing.Invoice) invoiceView {
	return invoiceView{Invoice: inv, TotalFormatted: billing.FormatCurrency(inv.Total)}
}

type invoicesView struct {
	Month               string        `json:"month"`
	Invoices            []invoiceView `json:"invoices"`
	GrandTotal          float64       `json:"grand_total"`
	GrandTotalFormatted string        `json:"grand_total_formatted"`
}

func newInvoicesView(year int, month time.Month, invoices []billing.Invoice) invoicesView {
	views := make([]invoiceView, len(invoices))
	for i, inv := range invoices {
		views[i] = newInvoiceView(inv)
	}

	total := billing.GrandTotal(invoices...)
	return invoicesView{
		Month:               dateutil.FormatMonth(year, month),
		Invoices:            views,
		GrandTotal:          total,
		GrandTotalFormatted: billing.FormatCurrency(total),
	}
}

func (a *API) invoice(w http.ResponseWriter, r *http.Request) {
	log := a.log(r, "server.invoice")

	inv, err := a.manager.Invoice(chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, log, err)
		return
	}

	a.countInvoices(1)
	respond(w, r, http.StatusOK, OK(newInvoiceView(inv)))
}

func (a *API) invoices(w http.ResponseWriter, r *http.Request) {
	year, month, invoices := a.manager.MonthInvoices()

	a.countInvoices(len(invoices))
	respond(w, r, http.StatusOK, OK(newInvoicesView(year, month, invoices)))
}

type previewItem struct {
	Name     string          `json:"name" validate:"required,max=100"`
	BaseRate any             `json:"base_rate"`
	Rates    *ratesRequest   `json:"rates"`
	IdleDays billing.DateSet `json:"idle_days"`
}

type previewRequest struct {
	Month     string        `json:"month" validate:"required"`
	Equipment []previewItem `json:"equipment" validate:"required,min=1,dive"`
}

// previewInvoices bills the posted equipment without touching the session
func (a *API) previewInvoices(w http.ResponseWriter, r *http.Request) {
	log := a.log(r, "server.previewInvoices")

	var req previewRequest
	if !a.decode(w, r, log, &req) {
		return
	}

	year, month, err := dateutil.ParseMonth(req.Month)
	if err != nil {
		respond(w, r, http.StatusBadRequest, Error("invalid month, want YYYY-MM"))
		return
	}

	items := make([]billing.Equipment, len(req.Equipment))
	for i, p := range req.Equipment {
		item := billing.NewEquipment(p.Name, billing.ParseAmount(p.BaseRate))
		if p.Rates != nil {
			item.Rates = billing.Rates{
				Weekday:  p.Rates.Weekday,
				Saturday: p.Rates.Saturday,
				Sunday:   p.Rates.Sunday,
			}.Sanitize()
		}
		item.IdleDays = p.IdleDays.Clone()
		items[i] = item
	}

	invoices := billing.BuildInvoices(items, year, month, calendar.HolidaySetFor(a.calendar, year))

	a.countInvoices(len(invoices))
	respond(w, r, http.StatusOK, OK(newInvoicesView(year, month, invoices)))
}
