package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"neuroload/internal/core/application/usecases/commands"
	"neuroload/internal/core/application/usecases/queries"
	"neuroload/internal/core/domain/model/cargo"
	"neuroload/internal/core/domain/model/escrow"
	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/core/domain/model/plan"
	"neuroload/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// PackagePayload is one cargo item of an order request.
type PackagePayload struct {
	ID         string  `json:"id"`
	WeightKg   float64 `json:"weightKg"`
	Fragility  string  `json:"fragility"`
	City       string  `json:"city"`
	Priority   string  `json:"priority"`
	Dimensions string  `json:"dimensions"`
}

// CityPayload is one destination of an order request.
type CityPayload struct {
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distanceKm"`
	SLAHours   int     `json:"slaHours"`
	Traffic    string  `json:"traffic"`
	Weather    string  `json:"weather"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
}

// ConstraintsPayload carries the truck limits of an order request.
type ConstraintsPayload struct {
	MaxWeightKg    float64 `json:"maxWeightKg"`
	VolumeCapacity float64 `json:"volumeCapacity"`
	FuelRate       float64 `json:"fuelRate"`
}

// ScenarioPayload carries the what-if factors of an order request.
type ScenarioPayload struct {
	FuelPriceMultiplier    float64 `json:"fuelPriceMultiplier"`
	TrafficSurgeMultiplier float64 `json:"trafficSurgeMultiplier"`
	IsHolidaySeason        bool    `json:"isHolidaySeason"`
}

// PostOrderRequest is the body of POST /orders.
type PostOrderRequest struct {
	ShipperID        string             `json:"shipperId"`
	Price            float64            `json:"price"`
	FuelCostEstimate float64            `json:"fuelCostEstimate"`
	TollsEstimate    float64            `json:"tollsEstimate"`
	Packages         []PackagePayload   `json:"packages"`
	Cities           []CityPayload      `json:"cities"`
	Constraints      ConstraintsPayload `json:"constraints"`
	Scenario         ScenarioPayload    `json:"scenario"`
}

func (r PostOrderRequest) toManifest() (cargo.Manifest, error) {
	packages := make([]cargo.Package, 0, len(r.Packages))
	for _, p := range r.Packages {
		pkg, err := cargo.NewPackage(
			p.ID, p.WeightKg,
			cargo.Fragility(p.Fragility),
			p.City,
			cargo.Priority(p.Priority),
			p.Dimensions,
		)
		if err != nil {
			return cargo.Manifest{}, err
		}
		packages = append(packages, pkg)
	}

	cities := make([]cargo.City, 0, len(r.Cities))
	for _, c := range r.Cities {
		point, err := kernel.NewGeoPoint(c.Lat, c.Lng)
		if err != nil {
			return cargo.Manifest{}, err
		}
		city, err := cargo.NewCity(
			c.Name, c.DistanceKm, c.SLAHours,
			cargo.TrafficCondition(c.Traffic),
			cargo.WeatherCondition(c.Weather),
			point,
		)
		if err != nil {
			return cargo.Manifest{}, err
		}
		cities = append(cities, city)
	}

	constraints, err := cargo.NewTruckConstraints(
		r.Constraints.MaxWeightKg,
		r.Constraints.VolumeCapacity,
		r.Constraints.FuelRate,
	)
	if err != nil {
		return cargo.Manifest{}, err
	}

	scenario, err := cargo.NewSimulationScenario(
		r.Scenario.FuelPriceMultiplier,
		r.Scenario.TrafficSurgeMultiplier,
		r.Scenario.IsHolidaySeason,
	)
	if err != nil {
		return cargo.Manifest{}, err
	}

	return cargo.NewManifest(packages, cities, constraints, scenario)
}

// OrderCreatedResponse is the body returned on order creation.
type OrderCreatedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// PostOrder handles POST /api/v1/orders - a shipper puts a new order on the
// marketplace.
func (s *Server) PostOrder(ctx echo.Context) error {
	var req PostOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	shipperID, err := kernel.UUIDFromString(req.ShipperID)
	if err != nil {
		return badRequest(ctx, "invalid shipper id")
	}

	manifest, err := req.toManifest()
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPostOrderCommand(
		orderID, shipperID,
		req.Price, req.FuelCostEstimate, req.TollsEstimate,
		manifest,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.postOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	response := OrderCreatedResponse{ID: orderID.String(), Status: "PENDING"}
	s.saveSnapshot(ctx, ports.SnapshotKeyOrder, response)

	return ctx.JSON(http.StatusCreated, response)
}

// MarketplaceOrderResponse is one entry of the carrier marketplace feed.
type MarketplaceOrderResponse struct {
	ID               string    `json:"id"`
	ShipperID        string    `json:"shipperId"`
	Price            float64   `json:"price"`
	FuelCostEstimate float64   `json:"fuelCostEstimate"`
	TollsEstimate    float64   `json:"tollsEstimate"`
	TotalWeightKg    float64   `json:"totalWeightKg"`
	CreatedAt        time.Time `json:"createdAt"`
}

// GetMarketplaceOrders handles GET /api/v1/orders/marketplace - lists the
// pending orders carriers can accept, newest first.
func (s *Server) GetMarketplaceOrders(ctx echo.Context) error {
	query := queries.NewGetMarketplaceOrdersQuery()

	orders, err := s.getMarketplaceOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]MarketplaceOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = MarketplaceOrderResponse{
			ID:               o.ID.String(),
			ShipperID:        o.ShipperID.String(),
			Price:            o.Price,
			FuelCostEstimate: o.FuelCostEstimate,
			TollsEstimate:    o.TollsEstimate,
			TotalWeightKg:    o.TotalWeightKg,
			CreatedAt:        o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AcceptOrderRequest is the body of POST /orders/:orderID/accept.
type AcceptOrderRequest struct {
	CarrierID string `json:"carrierId"`
	VehicleID string `json:"vehicleId"`
}

// AcceptOrder handles POST /api/v1/orders/:orderID/accept - a carrier takes
// a pending order with a specific vehicle. Money is held in escrow before
// the acceptance commits.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req AcceptOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	carrierID, err := kernel.UUIDFromString(req.CarrierID)
	if err != nil {
		return badRequest(ctx, "invalid carrier id")
	}
	vehicleID, err := kernel.UUIDFromString(req.VehicleID)
	if err != nil {
		return badRequest(ctx, "invalid vehicle id")
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, carrierID, vehicleID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	s.saveSnapshot(ctx, ports.SnapshotKeyOrder,
		OrderCreatedResponse{ID: orderID.String(), Status: "ACCEPTED"})

	return ctx.NoContent(http.StatusNoContent)
}

// PlacementZonesResponse mirrors the classifier's three truck zones.
type PlacementZonesResponse struct {
	ZoneA []plan.Placement `json:"zoneA"`
	ZoneB []plan.Placement `json:"zoneB"`
	ZoneC []plan.Placement `json:"zoneC"`
}

// PlanResponse carries the stored plan plus the derived placement zones.
type PlanResponse struct {
	OrderID string                 `json:"orderId"`
	Plan    plan.Plan              `json:"plan"`
	Zones   PlacementZonesResponse `json:"zones"`
}

// GeneratePlan handles POST /api/v1/orders/:orderID/plan - runs the planner
// once for the order, stores the plan and returns it.
func (s *Server) GeneratePlan(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewGeneratePlanCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.generatePlanHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return s.respondWithPlan(ctx, orderID, http.StatusCreated)
}

// GetPlan handles GET /api/v1/orders/:orderID/plan - returns the stored
// optimization plan.
func (s *Server) GetPlan(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	return s.respondWithPlan(ctx, orderID, http.StatusOK)
}

func (s *Server) respondWithPlan(ctx echo.Context, orderID kernel.UUID, code int) error {
	query, err := queries.NewGetPlanQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	stored, err := s.getPlanHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(code, PlanResponse{
		OrderID: stored.OrderID.String(),
		Plan:    stored.Plan,
		Zones: PlacementZonesResponse{
			ZoneA: stored.Zones.ZoneA,
			ZoneB: stored.Zones.ZoneB,
			ZoneC: stored.Zones.ZoneC,
		},
	})
}

// DispatchOrder handles POST /api/v1/orders/:orderID/dispatch - sends an
// accepted order out on the road.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeliveryResponse reports the outcome of a completed delivery. The payment
// part can fail while the delivery itself stands.
type DeliveryResponse struct {
	OrderID       string `json:"orderId"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	PaymentError  string `json:"paymentError,omitempty"`
}

// CompleteDelivery handles POST /api/v1/orders/:orderID/delivery - records
// proof of delivery and settles the escrow hold. A payout fault does not
// undo the delivery; it is reported in the response and retried by the
// reconciliation job.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	err = s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd)

	var escrowErr *escrow.Error
	if errors.As(err, &escrowErr) {
		// Delivery committed, payout pending reconciliation.
		return ctx.JSON(http.StatusOK, DeliveryResponse{
			OrderID:       orderID.String(),
			Status:        "DELIVERED",
			PaymentStatus: "FAILED",
			PaymentError:  escrowErr.Error(),
		})
	}
	if err != nil {
		return s.fail(ctx, err)
	}

	s.clearSnapshot(ctx, ports.SnapshotKeyOrder)

	return ctx.JSON(http.StatusOK, DeliveryResponse{
		OrderID:       orderID.String(),
		Status:        "DELIVERED",
		PaymentStatus: "RELEASED",
	})
}

// PaymentStatusResponse is the body of GET /orders/:orderID/payment.
type PaymentStatusResponse struct {
	OrderID          string `json:"orderId"`
	PaymentStatus    string `json:"paymentStatus"`
	EscrowOrderID    string `json:"escrowOrderId,omitempty"`
	EscrowTransferID string `json:"escrowTransferId,omitempty"`
}

// GetPaymentStatus handles GET /api/v1/orders/:orderID/payment.
func (s *Server) GetPaymentStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetPaymentStatusQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	status, err := s.getPaymentStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PaymentStatusResponse{
		OrderID:          status.OrderID.String(),
		PaymentStatus:    status.PaymentStatus,
		EscrowOrderID:    status.EscrowOrderID,
		EscrowTransferID: status.EscrowTransferID,
	})
}

// saveSnapshot best-effort persists a session snapshot. Snapshots are a
// convenience, so a store fault is logged and the request still succeeds.
func (s *Server) saveSnapshot(ctx echo.Context, key ports.SnapshotKey, value any) {
	payload, err := json.Marshal(value)
	if err == nil {
		err = s.stateStore.SaveSnapshot(ctx.Request().Context(), key, payload)
	}
	if err != nil {
		s.logger.WarnContext(ctx.Request().Context(), "session snapshot save failed",
			"slot", string(key),
			"error", err,
		)
	}
}

func (s *Server) clearSnapshot(ctx echo.Context, key ports.SnapshotKey) {
	if err := s.stateStore.ClearSnapshot(ctx.Request().Context(), key); err != nil {
		s.logger.WarnContext(ctx.Request().Context(), "session snapshot clear failed",
			"slot", string(key),
			"error", err,
		)
	}
}
