package courier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storekit-backend/internal/domain"

	"github.com/goccy/go-json"
)

const delhiveryTrackingURL = "https://www.delhivery.com/track/package/"

// Delhivery surface and express modes, each quoted as its own rate.
var delhiveryModes = []struct {
	code string
	name string
	days int
}{
	{code: "S", name: "Delhivery Surface", days: 5},
	{code: "E", name: "Delhivery Express", days: 3},
}

type DelhiveryConfig struct {
	APIToken       string
	BaseURL        string
	PickupLocation string
	Timeout        time.Duration
}

// Delhivery talks to Delhivery's direct-integration API.
type Delhivery struct {
	cfg        DelhiveryConfig
	httpClient *http.Client
}

func NewDelhivery(cfg DelhiveryConfig) *Delhivery {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Delhivery{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (d *Delhivery) Name() string { return domain.CourierDelhivery }

func (d *Delhivery) IsConfigured() bool {
	return d.cfg.APIToken != "" && d.cfg.BaseURL != ""
}

func (d *Delhivery) header() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Token "+d.cfg.APIToken)
	return h
}

func delhiveryPaymentMode(method string) string {
	if isCOD(method) {
		return "COD"
	}
	return "Prepaid"
}

func (d *Delhivery) ValidateCredentials(ctx context.Context) error {
	if !d.IsConfigured() {
		return ErrNotConfigured
	}
	_, err := d.CheckServiceability(ctx, "", "110001")
	return err
}

type delhiveryPinResponse struct {
	DeliveryCodes []struct {
		PostalCode struct {
			PrePaid string `json:"pre_paid"`
			COD     string `json:"cod"`
		} `json:"postal_code"`
	} `json:"delivery_codes"`
}

// CheckServiceability only consults the delivery pincode; Delhivery pickups
// are bound to the registered warehouse.
func (d *Delhivery) CheckServiceability(ctx context.Context, pickupPincode, deliveryPincode string) (bool, error) {
	if !d.IsConfigured() {
		return false, ErrNotConfigured
	}
	done := observe(d.Name(), "serviceability")

	q := url.Values{"filter_codes": {deliveryPincode}}
	var out delhiveryPinResponse
	err := doJSON(ctx, d.httpClient, http.MethodGet, d.cfg.BaseURL+"/c/api/pin-codes/json/?"+q.Encode(), d.header(), nil, &out)
	done(err == nil)
	if err != nil {
		return false, err
	}
	for _, dc := range out.DeliveryCodes {
		if strings.EqualFold(dc.PostalCode.PrePaid, "Y") || strings.EqualFold(dc.PostalCode.COD, "Y") {
			return true, nil
		}
	}
	return false, nil
}

type delhiveryCharge struct {
	TotalAmount float64 `json:"total_amount"`
	ChargeCOD   float64 `json:"charge_COD"`
}

func (d *Delhivery) GetRates(ctx context.Context, req domain.RateRequest) domain.RateResult {
	if !d.IsConfigured() {
		return domain.RateResult{Success: false, Rates: []domain.Rate{}, Error: errNotConfigured}
	}
	done := observe(d.Name(), "rates")

	var rates []domain.Rate
	var lastErr error
	for _, mode := range delhiveryModes {
		q := url.Values{
			"md":    {mode.code},
			"ss":    {"Delivered"},
			"o_pin": {req.PickupPincode},
			"d_pin": {req.DeliveryPincode},
			"cgm":   {strconv.Itoa(weightGrams(req.WeightKg))},
			"pt":    {delhiveryPaymentMode(req.PaymentMethod)},
		}
		if isCOD(req.PaymentMethod) {
			q.Set("cod", strconv.FormatFloat(req.DeclaredValue, 'f', 2, 64))
		}

		var charges []delhiveryCharge
		err := doJSON(ctx, d.httpClient, http.MethodGet, d.cfg.BaseURL+"/api/kinko/v1/invoice/charges/.json?"+q.Encode(), d.header(), nil, &charges)
		if err != nil {
			lastErr = err
			continue
		}
		if len(charges) == 0 || charges[0].TotalAmount <= 0 {
			continue
		}
		rates = append(rates, domain.Rate{
			CourierID:     mode.code,
			CourierName:   mode.name,
			Rate:          charges[0].TotalAmount,
			CODCharges:    charges[0].ChargeCOD,
			EstimatedDays: mode.days,
		})
	}

	if len(rates) == 0 && lastErr != nil {
		done(false)
		return domain.RateResult{Success: false, Rates: []domain.Rate{}, Error: errorString(lastErr)}
	}
	res := rateResult(rates)
	done(res.Success)
	return res
}

type delhiveryShipment struct {
	Name          string  `json:"name"`
	Add           string  `json:"add"`
	Pin           string  `json:"pin"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Country       string  `json:"country"`
	Phone         string  `json:"phone"`
	Order         string  `json:"order"`
	PaymentMode   string  `json:"payment_mode"`
	ProductsDesc  string  `json:"products_desc"`
	CODAmount     float64 `json:"cod_amount"`
	OrderDate     string  `json:"order_date"`
	TotalAmount   float64 `json:"total_amount"`
	Quantity      int     `json:"quantity"`
	Weight        int     `json:"weight"`
	ShipmentLen   float64 `json:"shipment_length,omitempty"`
	ShipmentWidth float64 `json:"shipment_width,omitempty"`
	ShipmentHt    float64 `json:"shipment_height,omitempty"`
	ShippingMode  string  `json:"shipping_mode,omitempty"`
}

type delhiveryCreatePayload struct {
	Shipments      []delhiveryShipment `json:"shipments"`
	PickupLocation struct {
		Name string `json:"name"`
	} `json:"pickup_location"`
}

type delhiveryCreateResponse struct {
	Success  bool   `json:"success"`
	RMK      string `json:"rmk"`
	Packages []struct {
		Waybill string   `json:"waybill"`
		Status  string   `json:"status"`
		Remarks []string `json:"remarks"`
	} `json:"packages"`
}

func (d *Delhivery) buildShipment(req domain.ShipmentRequest) delhiveryShipment {
	names := make([]string, 0, len(req.Items))
	qty := 0
	for _, it := range req.Items {
		names = append(names, it.Name)
		qty += it.Quantity
	}
	address := req.Delivery.Line1
	if req.Delivery.Line2 != "" {
		address += ", " + req.Delivery.Line2
	}
	country := req.Delivery.Country
	if country == "" {
		country = "India"
	}
	s := delhiveryShipment{
		Name:          req.Delivery.Name,
		Add:           address,
		Pin:           req.Delivery.Pincode,
		City:          req.Delivery.City,
		State:         req.Delivery.State,
		Country:       country,
		Phone:         req.Delivery.Phone,
		Order:         req.OrderID,
		PaymentMode:   delhiveryPaymentMode(req.PaymentMethod),
		ProductsDesc:  strings.Join(names, ", "),
		OrderDate:     req.OrderDate.In(ist).Format("2006-01-02 15:04:05"),
		TotalAmount:   req.OrderTotal,
		Quantity:      qty,
		Weight:        weightGrams(req.WeightKg),
		ShipmentLen:   req.LengthCm,
		ShipmentWidth: req.BreadthCm,
		ShipmentHt:    req.HeightCm,
	}
	if isCOD(req.PaymentMethod) {
		s.CODAmount = req.CODAmount
		if s.CODAmount == 0 {
			s.CODAmount = req.OrderTotal
		}
	}
	if req.CourierID == "E" {
		s.ShippingMode = "Express"
	}
	return s
}

func (d *Delhivery) CreateShipment(ctx context.Context, req domain.ShipmentRequest) domain.ShipmentResult {
	if !d.IsConfigured() {
		return domain.ShipmentResult{Success: false, Error: errNotConfigured}
	}
	done := observe(d.Name(), "create_shipment")

	payload := delhiveryCreatePayload{Shipments: []delhiveryShipment{d.buildShipment(req)}}
	payload.PickupLocation.Name = req.PickupLocation
	if payload.PickupLocation.Name == "" {
		payload.PickupLocation.Name = d.cfg.PickupLocation
	}
	data, err := json.Marshal(payload)
	if err != nil {
		done(false)
		return domain.ShipmentResult{Success: false, Error: err.Error()}
	}

	var out delhiveryCreateResponse
	err = doForm(ctx, d.httpClient, d.cfg.BaseURL+"/api/cmu/create.json", d.header(),
		url.Values{"format": {"json"}, "data": {string(data)}}, &out)
	if err != nil {
		done(false)
		return domain.ShipmentResult{Success: false, Error: errorString(err)}
	}
	if !out.Success || len(out.Packages) == 0 || out.Packages[0].Waybill == "" {
		done(false)
		msg := out.RMK
		if len(out.Packages) > 0 && len(out.Packages[0].Remarks) > 0 {
			msg = strings.Join(out.Packages[0].Remarks, "; ")
		}
		if msg == "" {
			msg = "shipment creation failed"
		}
		return domain.ShipmentResult{Success: false, Error: msg}
	}

	done(true)
	awb := out.Packages[0].Waybill
	name := delhiveryModes[0].name
	if req.CourierID == "E" {
		name = delhiveryModes[1].name
	}
	return domain.ShipmentResult{
		Success:     true,
		ShipmentID:  awb,
		AWBCode:     awb,
		CourierName: name,
		TrackingURL: delhiveryTrackingURL + awb,
	}
}

type delhiveryTrackResponse struct {
	ShipmentData []struct {
		Shipment struct {
			Status struct {
				Status         string `json:"Status"`
				StatusLocation string `json:"StatusLocation"`
				StatusDateTime string `json:"StatusDateTime"`
			} `json:"Status"`
			ExpectedDeliveryDate string `json:"ExpectedDeliveryDate"`
			Scans                []struct {
				ScanDetail struct {
					ScanDateTime    string `json:"ScanDateTime"`
					Scan            string `json:"Scan"`
					Instructions    string `json:"Instructions"`
					ScannedLocation string `json:"ScannedLocation"`
				} `json:"ScanDetail"`
			} `json:"Scans"`
		} `json:"Shipment"`
	} `json:"ShipmentData"`
	Error string `json:"Error"`
}

func (d *Delhivery) TrackShipment(ctx context.Context, awbCode string) domain.TrackingResult {
	if !d.IsConfigured() {
		return domain.TrackingResult{Success: false, CurrentStatus: domain.ShipmentStatusUnknown, Events: []domain.TrackingEvent{}, Error: errNotConfigured}
	}
	done := observe(d.Name(), "track")

	q := url.Values{"waybill": {awbCode}}
	var out delhiveryTrackResponse
	err := doJSON(ctx, d.httpClient, http.MethodGet, d.cfg.BaseURL+"/api/v1/packages/json/?"+q.Encode(), d.header(), nil, &out)
	if err != nil {
		done(false)
		return domain.TrackingResult{Success: false, CurrentStatus: domain.ShipmentStatusUnknown, Events: []domain.TrackingEvent{}, Error: errorString(err)}
	}
	if len(out.ShipmentData) == 0 {
		done(false)
		msg := out.Error
		if msg == "" {
			msg = "shipment not found"
		}
		return domain.TrackingResult{Success: false, CurrentStatus: domain.ShipmentStatusUnknown, Events: []domain.TrackingEvent{}, Error: msg}
	}
	done(true)

	sh := out.ShipmentData[0].Shipment
	res := domain.TrackingResult{
		Success:         true,
		CurrentStatus:   NormalizeStatus(sh.Status.Status),
		CurrentLocation: sh.Status.StatusLocation,
		Events:          make([]domain.TrackingEvent, 0, len(sh.Scans)),
	}
	if t, ok := parseCourierTime(sh.ExpectedDeliveryDate); ok {
		res.EstimatedDelivery = &t
	}
	if res.CurrentStatus == domain.ShipmentStatusDelivered {
		if t, ok := parseCourierTime(sh.Status.StatusDateTime); ok {
			res.DeliveredAt = &t
		}
	}
	for _, s := range sh.Scans {
		ev := domain.TrackingEvent{
			Status:   NormalizeStatus(s.ScanDetail.Scan),
			Activity: s.ScanDetail.Instructions,
			Location: s.ScanDetail.ScannedLocation,
		}
		if ev.Activity == "" {
			ev.Activity = s.ScanDetail.Scan
		}
		if t, ok := parseCourierTime(s.ScanDetail.ScanDateTime); ok {
			ev.Date = t
		}
		res.Events = append(res.Events, ev)
	}
	sortEvents(res.Events)
	return res
}

type delhiveryCancelResponse struct {
	Status bool   `json:"status"`
	Remark string `json:"remark"`
}

func (d *Delhivery) CancelShipment(ctx context.Context, awbCode string) domain.CancelResult {
	if !d.IsConfigured() {
		return domain.CancelResult{Success: false, Error: errNotConfigured}
	}
	done := observe(d.Name(), "cancel")

	body := map[string]string{"waybill": awbCode, "cancellation": "true"}
	var out delhiveryCancelResponse
	err := doJSON(ctx, d.httpClient, http.MethodPost, d.cfg.BaseURL+"/api/p/edit", d.header(), body, &out)
	if err != nil {
		done(false)
		return domain.CancelResult{Success: false, Error: errorString(err)}
	}
	if !out.Status {
		done(false)
		msg := out.Remark
		if msg == "" {
			msg = "cancellation rejected"
		}
		return domain.CancelResult{Success: false, Error: msg}
	}
	done(true)
	return domain.CancelResult{Success: true}
}

type delhiveryLabelResponse struct {
	Packages []struct {
		PDFDownloadLink string `json:"pdf_download_link"`
	} `json:"packages"`
}

// GenerateLabel takes the waybill; Delhivery has no separate shipment id.
func (d *Delhivery) GenerateLabel(ctx context.Context, shipmentID string) domain.LabelResult {
	if !d.IsConfigured() {
		return domain.LabelResult{Success: false, Error: errNotConfigured}
	}
	done := observe(d.Name(), "label")

	q := url.Values{"wbns": {shipmentID}, "pdf": {"true"}}
	var out delhiveryLabelResponse
	err := doJSON(ctx, d.httpClient, http.MethodGet, d.cfg.BaseURL+"/api/p/packing_slip?"+q.Encode(), d.header(), nil, &out)
	if err != nil {
		done(false)
		return domain.LabelResult{Success: false, Error: errorString(err)}
	}
	if len(out.Packages) == 0 || out.Packages[0].PDFDownloadLink == "" {
		done(false)
		return domain.LabelResult{Success: false, Error: fmt.Sprintf("no label for shipment %s", shipmentID)}
	}
	done(true)
	return domain.LabelResult{Success: true, LabelURL: out.Packages[0].PDFDownloadLink}
}
