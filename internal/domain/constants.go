package domain

// Payment Methods
const (
	PaymentMethodCOD     = "cod"
	PaymentMethodPrepaid = "prepaid"
)

// Zone Types
const (
	ZoneTypeStates   = "states"
	ZoneTypePincodes = "pincodes"
	ZoneTypeDefault  = "default"
)

// Zone names reported when no zone was used for a quote
const (
	ZoneNameStandard      = "Standard"
	ZoneNameUnserviceable = "Unserviceable"
)

// Recovery Statuses
const (
	RecoveryStatusActive       = "active"
	RecoveryStatusRecovered    = "recovered"
	RecoveryStatusExpired      = "expired"
	RecoveryStatusUnsubscribed = "unsubscribed"
)

// Notification Templates
const (
	TemplateOrderConfirmation = "order_confirmation"
	TemplateOrderShipped      = "order_shipped"
	TemplateOrderDelivered    = "order_delivered"
	TemplateCODReminder       = "cod_reminder"
	TemplateAbandonedCart     = "abandoned_cart"
)

// Notification Channels
const (
	ChannelWhatsApp = "whatsapp"
	ChannelEmail    = "email"
)

// Notification Statuses (audit + log rows)
const (
	NotificationStatusAttempt = "attempt"
	NotificationStatusRetry   = "retry"
	NotificationStatusSent    = "sent"
	NotificationStatusFailed  = "failed"
	NotificationStatusMocked  = "mocked"
)

// Credential sources
const (
	CredentialSourceStore    = "store"
	CredentialSourcePlatform = "platform"
)

// Couriers
const (
	CourierDelhivery  = "delhivery"
	CourierShiprocket = "shiprocket"
)

// Normalized shipment statuses
const (
	ShipmentStatusPending        = "pending"
	ShipmentStatusPickedUp       = "picked_up"
	ShipmentStatusInTransit      = "in_transit"
	ShipmentStatusOutForDelivery = "out_for_delivery"
	ShipmentStatusDelivered      = "delivered"
	ShipmentStatusRTO            = "rto"
	ShipmentStatusCancelled      = "cancelled"
	ShipmentStatusUnknown        = "unknown"
)

var ZoneTypes = []string{
	ZoneTypeStates,
	ZoneTypePincodes,
	ZoneTypeDefault,
}

var PaymentMethods = []string{
	PaymentMethodCOD,
	PaymentMethodPrepaid,
}
