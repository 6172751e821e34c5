package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-CenterBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-CenterBooking/internal/api/handlers/create_booking"
	enableRecurringSlotsHandler "github.com/m04kA/SMC-CenterBooking/internal/api/handlers/enable_recurring_slots"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CenterBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-CenterBooking/internal/api/handlers/get_booking"
	getCenterDistanceHandler "github.com/m04kA/SMC-CenterBooking/internal/api/handlers/get_center_distance"
	getDashboardHandler "github.com/m04kA/SMC-CenterBooking/internal/api/handlers/get_dashboard"
	getSlotBoardHandler "github.com/m04kA/SMC-CenterBooking/internal/api/handlers/get_slot_board"
	getSlotEnablementHandler "github.com/m04kA/SMC-CenterBooking/internal/api/handlers/get_slot_enablement"
	listBookingsHandler "github.com/m04kA/SMC-CenterBooking/internal/api/handlers/list_bookings"
	listCentersHandler "github.com/m04kA/SMC-CenterBooking/internal/api/handlers/list_centers"
	rankCentersHandler "github.com/m04kA/SMC-CenterBooking/internal/api/handlers/rank_centers"
	setSlotEnablementHandler "github.com/m04kA/SMC-CenterBooking/internal/api/handlers/set_slot_enablement"
	"github.com/m04kA/SMC-CenterBooking/internal/api/middleware"
)

// Router собирает маршруты HTTP API
func (a *app) Router() http.Handler {
	// Инициализируем handlers
	listCenters := listCentersHandler.NewHandler(a.directory, a.log)
	rankCenters := rankCentersHandler.NewHandler(a.rankUC, a.log)
	getCenterDistance := getCenterDistanceHandler.NewHandler(a.rankUC, a.log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(a.availability, a.log)
	createBooking := createBookingHandler.NewHandler(a.createUC, a.log)
	getBooking := getBookingHandler.NewHandler(a.bookingSvc, a.log)
	cancelBooking := cancelBookingHandler.NewHandler(a.bookingSvc, a.log)
	listBookings := listBookingsHandler.NewHandler(a.bookingSvc, a.log)
	getDashboard := getDashboardHandler.NewHandler(a.bookingSvc, a.log)
	getSlotEnablement := getSlotEnablementHandler.NewHandler(a.slotSvc, a.log)
	setSlotEnablement := setSlotEnablementHandler.NewHandler(a.slotSvc, a.log)
	enableRecurringSlots := enableRecurringSlotsHandler.NewHandler(a.slotSvc, a.log)
	getSlotBoard := getSlotBoardHandler.NewHandler(a.slotSvc, a.log)

	r := mux.NewRouter()
	r.Use(middleware.Recover(a.log))

	if a.metrics != nil {
		r.Use(middleware.MetricsMiddleware(a.metrics))
		r.Handle(a.cfg.Metrics.Path, promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
		a.log.Info("Prometheus metrics endpoint exposed at %s", a.cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Справочник центров и ранжирование по расстоянию
	api.HandleFunc("/centers", listCenters.Handle).Methods(http.MethodGet)
	api.HandleFunc("/centers/rank", rankCenters.Handle).Methods(http.MethodGet)
	api.HandleFunc("/centers/distance", getCenterDistance.Handle).Methods(http.MethodGet)

	// Доступные слоты центра на дату
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Бронирование
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(a.cfg.Server.AdminToken, a.log))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/dashboard", getDashboard.Handle).Methods(http.MethodGet)

	// --- Включение слотов ---
	admin.HandleFunc("/slots", getSlotEnablement.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/slots", setSlotEnablement.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/slots/recurring", enableRecurringSlots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/slots/board", getSlotBoard.Handle).Methods(http.MethodGet)

	return r
}
