package courier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"storekit-backend/internal/domain"
	"storekit-backend/pkg/cache"
)

// Shiprocket tokens are valid for ten days; refresh a day early.
const shiprocketTokenTTL = 9 * 24 * time.Hour

type ShiprocketConfig struct {
	Email          string
	Password       string
	BaseURL        string
	PickupLocation string
	Timeout        time.Duration
}

// Shiprocket is an aggregator: one account quotes and books many couriers.
type Shiprocket struct {
	cfg        ShiprocketConfig
	cache      cache.CacheService
	httpClient *http.Client
	loginMu    sync.Mutex
}

func NewShiprocket(cfg ShiprocketConfig, cache cache.CacheService) *Shiprocket {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Shiprocket{
		cfg:        cfg,
		cache:      cache,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (s *Shiprocket) Name() string { return domain.CourierShiprocket }

func (s *Shiprocket) IsConfigured() bool {
	return s.cfg.Email != "" && s.cfg.Password != "" && s.cfg.BaseURL != ""
}

type shiprocketLoginResponse struct {
	Token string `json:"token"`
}

func (s *Shiprocket) login(ctx context.Context) (string, error) {
	var out shiprocketLoginResponse
	body := map[string]string{"email": s.cfg.Email, "password": s.cfg.Password}
	if err := doJSON(ctx, s.httpClient, http.MethodPost, s.cfg.BaseURL+"/auth/login", nil, body, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("shiprocket login returned no token")
	}
	return out.Token, nil
}

func (s *Shiprocket) token(ctx context.Context) (string, error) {
	if v, ok := s.cache.Get(cache.KeyShiprocketToken); ok {
		if t, ok := v.(string); ok && t != "" {
			return t, nil
		}
	}

	s.loginMu.Lock()
	defer s.loginMu.Unlock()
	if v, ok := s.cache.Get(cache.KeyShiprocketToken); ok {
		if t, ok := v.(string); ok && t != "" {
			return t, nil
		}
	}

	t, err := s.login(ctx)
	if err != nil {
		return "", err
	}
	s.cache.Set(cache.KeyShiprocketToken, t, shiprocketTokenTTL)
	return t, nil
}

// call runs an authenticated request, logging in again once on 401.
func (s *Shiprocket) call(ctx context.Context, method, path string, in, out any) error {
	for attempt := 0; attempt < 2; attempt++ {
		tok, err := s.token(ctx)
		if err != nil {
			return err
		}
		h := http.Header{}
		h.Set("Authorization", "Bearer "+tok)
		err = doJSON(ctx, s.httpClient, method, s.cfg.BaseURL+path, h, in, out)
		if attempt == 0 && isUnauthorized(err) {
			s.cache.Delete(cache.KeyShiprocketToken)
			continue
		}
		return err
	}
	return nil
}

func (s *Shiprocket) ValidateCredentials(ctx context.Context) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}
	t, err := s.login(ctx)
	if err != nil {
		return err
	}
	s.cache.Set(cache.KeyShiprocketToken, t, shiprocketTokenTTL)
	return nil
}

// flexInt accepts numbers and numeric strings; anything else reads as zero.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	v := strings.Trim(string(b), `"`)
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}

type shiprocketServiceability struct {
	Status int `json:"status"`
	Data   struct {
		AvailableCourierCompanies []struct {
			CourierCompanyID      flexInt `json:"courier_company_id"`
			CourierName           string  `json:"courier_name"`
			Rate                  float64 `json:"rate"`
			CODCharges            float64 `json:"cod_charges"`
			EstimatedDeliveryDays flexInt `json:"estimated_delivery_days"`
		} `json:"available_courier_companies"`
	} `json:"data"`
	Message string `json:"message"`
}

func shiprocketWeightKg(kg float64) string {
	if kg < 0.1 {
		kg = 0.1
	}
	return strconv.FormatFloat(float64(weightGrams(kg))/1000, 'f', 3, 64)
}

func (s *Shiprocket) serviceability(ctx context.Context, req domain.RateRequest) (shiprocketServiceability, error) {
	cod := "0"
	if isCOD(req.PaymentMethod) {
		cod = "1"
	}
	q := url.Values{
		"pickup_postcode":   {req.PickupPincode},
		"delivery_postcode": {req.DeliveryPincode},
		"weight":            {shiprocketWeightKg(req.WeightKg)},
		"cod":               {cod},
	}
	if req.DeclaredValue > 0 {
		q.Set("declared_value", strconv.FormatFloat(req.DeclaredValue, 'f', 2, 64))
	}
	var out shiprocketServiceability
	err := s.call(ctx, http.MethodGet, "/courier/serviceability/?"+q.Encode(), nil, &out)
	return out, err
}

func (s *Shiprocket) CheckServiceability(ctx context.Context, pickupPincode, deliveryPincode string) (bool, error) {
	if !s.IsConfigured() {
		return false, ErrNotConfigured
	}
	done := observe(s.Name(), "serviceability")
	out, err := s.serviceability(ctx, domain.RateRequest{
		PickupPincode:   pickupPincode,
		DeliveryPincode: deliveryPincode,
		WeightKg:        0.5,
	})
	done(err == nil)
	if err != nil {
		return false, err
	}
	return len(out.Data.AvailableCourierCompanies) > 0, nil
}

func (s *Shiprocket) GetRates(ctx context.Context, req domain.RateRequest) domain.RateResult {
	if !s.IsConfigured() {
		return domain.RateResult{Success: false, Rates: []domain.Rate{}, Error: errNotConfigured}
	}
	done := observe(s.Name(), "rates")
	out, err := s.serviceability(ctx, req)
	if err != nil {
		done(false)
		return domain.RateResult{Success: false, Rates: []domain.Rate{}, Error: errorString(err)}
	}

	rates := make([]domain.Rate, 0, len(out.Data.AvailableCourierCompanies))
	for _, c := range out.Data.AvailableCourierCompanies {
		rates = append(rates, domain.Rate{
			CourierID:     strconv.Itoa(int(c.CourierCompanyID)),
			CourierName:   c.CourierName,
			Rate:          c.Rate,
			CODCharges:    c.CODCharges,
			EstimatedDays: int(c.EstimatedDeliveryDays),
		})
	}
	res := rateResult(rates)
	done(res.Success)
	return res
}

type shiprocketOrderItem struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Units        int     `json:"units"`
	SellingPrice float64 `json:"selling_price"`
}

type shiprocketOrder struct {
	OrderID             string                `json:"order_id"`
	OrderDate           string                `json:"order_date"`
	PickupLocation      string                `json:"pickup_location"`
	BillingCustomerName string                `json:"billing_customer_name"`
	BillingLastName     string                `json:"billing_last_name"`
	BillingAddress      string                `json:"billing_address"`
	BillingAddress2     string                `json:"billing_address_2,omitempty"`
	BillingCity         string                `json:"billing_city"`
	BillingPincode      string                `json:"billing_pincode"`
	BillingState        string                `json:"billing_state"`
	BillingCountry      string                `json:"billing_country"`
	BillingEmail        string                `json:"billing_email"`
	BillingPhone        string                `json:"billing_phone"`
	ShippingIsBilling   bool                  `json:"shipping_is_billing"`
	OrderItems          []shiprocketOrderItem `json:"order_items"`
	PaymentMethod       string                `json:"payment_method"`
	SubTotal            float64               `json:"sub_total"`
	Length              float64               `json:"length"`
	Breadth             float64               `json:"breadth"`
	Height              float64               `json:"height"`
	Weight              float64               `json:"weight"`
}

type shiprocketOrderResponse struct {
	OrderID    flexInt `json:"order_id"`
	ShipmentID flexInt `json:"shipment_id"`
	Status     string  `json:"status"`
	AWBCode    string  `json:"awb_code"`
	Courier    string  `json:"courier_name"`
	Message    string  `json:"message"`
}

type shiprocketAWBResponse struct {
	AWBAssignStatus int `json:"awb_assign_status"`
	Response        struct {
		Data struct {
			AWBCode     string `json:"awb_code"`
			CourierName string `json:"courier_name"`
		} `json:"data"`
	} `json:"response"`
	Message string `json:"message"`
}

func splitName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	first, last, _ = strings.Cut(full, " ")
	return first, strings.TrimSpace(last)
}

func (s *Shiprocket) buildOrder(req domain.ShipmentRequest) shiprocketOrder {
	items := make([]shiprocketOrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, shiprocketOrderItem{Name: it.Name, SKU: it.SKU, Units: it.Quantity, SellingPrice: it.UnitPrice})
	}
	first, last := splitName(req.Delivery.Name)
	country := req.Delivery.Country
	if country == "" {
		country = "India"
	}
	pickup := req.PickupLocation
	if pickup == "" {
		pickup = s.cfg.PickupLocation
	}
	method := "Prepaid"
	if isCOD(req.PaymentMethod) {
		method = "COD"
	}
	weight, _ := strconv.ParseFloat(shiprocketWeightKg(req.WeightKg), 64)
	return shiprocketOrder{
		OrderID:             req.OrderID,
		OrderDate:           req.OrderDate.In(ist).Format("2006-01-02 15:04"),
		PickupLocation:      pickup,
		BillingCustomerName: first,
		BillingLastName:     last,
		BillingAddress:      req.Delivery.Line1,
		BillingAddress2:     req.Delivery.Line2,
		BillingCity:         req.Delivery.City,
		BillingPincode:      req.Delivery.Pincode,
		BillingState:        req.Delivery.State,
		BillingCountry:      country,
		BillingEmail:        req.Delivery.Email,
		BillingPhone:        req.Delivery.Phone,
		ShippingIsBilling:   true,
		OrderItems:          items,
		PaymentMethod:       method,
		SubTotal:            req.OrderTotal,
		Length:              req.LengthCm,
		Breadth:             req.BreadthCm,
		Height:              req.HeightCm,
		Weight:              weight,
	}
}

// CreateShipment books the order, then assigns an AWB. A booked order whose
// AWB assignment fails is reported as a failure carrying the shipment id.
func (s *Shiprocket) CreateShipment(ctx context.Context, req domain.ShipmentRequest) domain.ShipmentResult {
	if !s.IsConfigured() {
		return domain.ShipmentResult{Success: false, Error: errNotConfigured}
	}
	done := observe(s.Name(), "create_shipment")

	var order shiprocketOrderResponse
	if err := s.call(ctx, http.MethodPost, "/orders/create/adhoc", s.buildOrder(req), &order); err != nil {
		done(false)
		return domain.ShipmentResult{Success: false, Error: errorString(err)}
	}
	if order.ShipmentID == 0 {
		done(false)
		msg := order.Message
		if msg == "" {
			msg = "shipment creation failed"
		}
		return domain.ShipmentResult{Success: false, Error: msg}
	}
	shipmentID := strconv.Itoa(int(order.ShipmentID))

	assign := map[string]any{"shipment_id": int(order.ShipmentID)}
	if req.CourierID != "" {
		assign["courier_id"] = req.CourierID
	}
	var awb shiprocketAWBResponse
	if err := s.call(ctx, http.MethodPost, "/courier/assign/awb", assign, &awb); err != nil {
		done(false)
		return domain.ShipmentResult{Success: false, ShipmentID: shipmentID, Error: errorString(err)}
	}
	if awb.AWBAssignStatus != 1 || awb.Response.Data.AWBCode == "" {
		done(false)
		msg := awb.Message
		if msg == "" {
			msg = "awb assignment failed"
		}
		return domain.ShipmentResult{Success: false, ShipmentID: shipmentID, Error: msg}
	}

	done(true)
	code := awb.Response.Data.AWBCode
	return domain.ShipmentResult{
		Success:     true,
		ShipmentID:  shipmentID,
		AWBCode:     code,
		CourierName: awb.Response.Data.CourierName,
		TrackingURL: "https://shiprocket.co/tracking/" + code,
	}
}

type shiprocketTrackResponse struct {
	TrackingData struct {
		TrackStatus   int `json:"track_status"`
		ShipmentTrack []struct {
			CurrentStatus string `json:"current_status"`
			DeliveredDate string `json:"delivered_date"`
			EDD           string `json:"edd"`
			Destination   string `json:"destination"`
		} `json:"shipment_track"`
		Activities []struct {
			Date          string `json:"date"`
			Status        string `json:"status"`
			Activity      string `json:"activity"`
			Location      string `json:"location"`
			SRStatusLabel string `json:"sr-status-label"`
		} `json:"shipment_track_activities"`
		ETD   string `json:"etd"`
		Error string `json:"error"`
	} `json:"tracking_data"`
}

func (s *Shiprocket) TrackShipment(ctx context.Context, awbCode string) domain.TrackingResult {
	failed := func(msg string) domain.TrackingResult {
		return domain.TrackingResult{Success: false, CurrentStatus: domain.ShipmentStatusUnknown, Events: []domain.TrackingEvent{}, Error: msg}
	}
	if !s.IsConfigured() {
		return failed(errNotConfigured)
	}
	done := observe(s.Name(), "track")

	var out shiprocketTrackResponse
	if err := s.call(ctx, http.MethodGet, "/courier/track/awb/"+url.PathEscape(awbCode), nil, &out); err != nil {
		done(false)
		return failed(errorString(err))
	}
	td := out.TrackingData
	if td.Error != "" || (td.TrackStatus == 0 && len(td.ShipmentTrack) == 0) {
		done(false)
		msg := td.Error
		if msg == "" {
			msg = "shipment not found"
		}
		return failed(msg)
	}
	done(true)

	res := domain.TrackingResult{
		Success:       true,
		CurrentStatus: domain.ShipmentStatusUnknown,
		Events:        make([]domain.TrackingEvent, 0, len(td.Activities)),
	}
	if t, ok := parseCourierTime(td.ETD); ok {
		res.EstimatedDelivery = &t
	}
	if len(td.ShipmentTrack) > 0 {
		st := td.ShipmentTrack[0]
		res.CurrentStatus = NormalizeStatus(st.CurrentStatus)
		if res.EstimatedDelivery == nil {
			if t, ok := parseCourierTime(st.EDD); ok {
				res.EstimatedDelivery = &t
			}
		}
		if t, ok := parseCourierTime(st.DeliveredDate); ok {
			res.DeliveredAt = &t
		}
	}
	for _, a := range td.Activities {
		label := a.SRStatusLabel
		if label == "" {
			label = a.Activity
		}
		ev := domain.TrackingEvent{
			Status:   NormalizeStatus(label),
			Activity: a.Activity,
			Location: a.Location,
		}
		if t, ok := parseCourierTime(a.Date); ok {
			ev.Date = t
		}
		res.Events = append(res.Events, ev)
	}
	sortEvents(res.Events)
	if len(res.Events) > 0 {
		res.CurrentLocation = res.Events[0].Location
	}
	return res
}

func (s *Shiprocket) CancelShipment(ctx context.Context, awbCode string) domain.CancelResult {
	if !s.IsConfigured() {
		return domain.CancelResult{Success: false, Error: errNotConfigured}
	}
	done := observe(s.Name(), "cancel")
	err := s.call(ctx, http.MethodPost, "/orders/cancel/shipment/awbs", map[string][]string{"awbs": {awbCode}}, nil)
	done(err == nil)
	if err != nil {
		return domain.CancelResult{Success: false, Error: errorString(err)}
	}
	return domain.CancelResult{Success: true}
}

type shiprocketLabelResponse struct {
	LabelCreated int    `json:"label_created"`
	LabelURL     string `json:"label_url"`
	Response     string `json:"response"`
}

func (s *Shiprocket) GenerateLabel(ctx context.Context, shipmentID string) domain.LabelResult {
	if !s.IsConfigured() {
		return domain.LabelResult{Success: false, Error: errNotConfigured}
	}
	id, err := strconv.Atoi(shipmentID)
	if err != nil {
		return domain.LabelResult{Success: false, Error: fmt.Sprintf("invalid shipment id %q", shipmentID)}
	}
	done := observe(s.Name(), "label")

	var out shiprocketLabelResponse
	if err := s.call(ctx, http.MethodPost, "/courier/generate/label", map[string][]int{"shipment_id": {id}}, &out); err != nil {
		done(false)
		return domain.LabelResult{Success: false, Error: errorString(err)}
	}
	if out.LabelCreated != 1 || out.LabelURL == "" {
		done(false)
		msg := out.Response
		if msg == "" {
			msg = "label generation failed"
		}
		return domain.LabelResult{Success: false, Error: msg}
	}
	done(true)
	return domain.LabelResult{Success: true, LabelURL: out.LabelURL}
}
