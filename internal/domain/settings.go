package domain

// ConfigurationDocument is the single business-settings object. Each section
// is independent: there are no cross-section invariants, and the validator
// checks every section regardless of findings in the others.
type ConfigurationDocument struct {
	Currencies     CurrencySettings      `json:"currencies" bson:"currencies"`
	Shipping       ShippingSettings      `json:"shipping" bson:"shipping"`
	Commissions    CommissionSettings    `json:"commissions" bson:"commissions"`
	Warehouse      WarehouseSettings     `json:"warehouse" bson:"warehouse"`
	Delivery       DeliverySettings      `json:"delivery" bson:"delivery"`
	OrdersInvoices OrderInvoiceSettings  `json:"ordersInvoices" bson:"ordersInvoices"`
	Notifications  NotificationSettings  `json:"notifications" bson:"notifications"`
	Roles          RoleSettings          `json:"roles" bson:"roles"`
	Users          []UserAccount         `json:"users" bson:"users"`
}

// CurrencySettings holds exchange rates into MRU keyed by currency code.
type CurrencySettings struct {
	BaseCurrency string             `json:"baseCurrency" bson:"baseCurrency"`
	Rates        map[string]float64 `json:"rates" bson:"rates"`
}

// ShippingSettings holds the priced shipping-type tiers.
type ShippingSettings struct {
	Types []ShippingType `json:"types" bson:"types"`
}

// ShippingType is a priced/timed shipping option keyed by transport kind and
// optional destination country. EffectiveFrom/EffectiveTo are date strings
// ("2006-01-02" or RFC3339); an empty or unparsable bound means the window is
// open on that side.
type ShippingType struct {
	ID            string  `json:"id" bson:"id"`
	Kind          string  `json:"kind" bson:"kind"` // air_standard, air_express, sea
	Country       string  `json:"country,omitempty" bson:"country,omitempty"`
	PricePerKgMRU float64 `json:"pricePerKgMRU" bson:"pricePerKgMRU"`
	DurationDays  *int    `json:"durationDays,omitempty" bson:"durationDays,omitempty"`
	EffectiveFrom string  `json:"effectiveFrom,omitempty" bson:"effectiveFrom,omitempty"`
	EffectiveTo   string  `json:"effectiveTo,omitempty" bson:"effectiveTo,omitempty"`
}

// CommissionSettings holds the commission policies.
type CommissionSettings struct {
	Policies []CommissionPolicy `json:"policies" bson:"policies"`
}

// Commission policy types.
const (
	CommissionTypePercentage = "percentage"
	CommissionTypeFixed      = "fixed"
)

// CommissionPolicy determines the service fee retained on an order. A policy
// with an empty StoreID applies to every store; a policy with no effective
// bounds is always active. Policies are selected by the pricing resolver,
// never mutated by it.
type CommissionPolicy struct {
	ID            string  `json:"id" bson:"id"`
	StoreID       string  `json:"storeId,omitempty" bson:"storeId,omitempty"`
	Type          string  `json:"type" bson:"type"` // percentage or fixed
	Value         float64 `json:"value" bson:"value"`
	EffectiveFrom string  `json:"effectiveFrom,omitempty" bson:"effectiveFrom,omitempty"`
	EffectiveTo   string  `json:"effectiveTo,omitempty" bson:"effectiveTo,omitempty"`
}

// WarehouseSettings holds drawer layout and alerting thresholds.
type WarehouseSettings struct {
	Drawers                   []Drawer `json:"drawers" bson:"drawers"`
	FullAlertThresholdPercent float64  `json:"fullAlertThresholdPercent" bson:"fullAlertThresholdPercent"`
}

// Drawer is a physical storage slot in the warehouse.
type Drawer struct {
	ID       string `json:"id" bson:"id"`
	Label    string `json:"label,omitempty" bson:"label,omitempty"`
	Capacity int    `json:"capacity" bson:"capacity"`
}

// DeliverySettings holds local delivery pricing.
type DeliverySettings struct {
	CourierProfitPercent float64 `json:"courierProfitPercent" bson:"courierProfitPercent"`
	BasePriceMRU         float64 `json:"basePriceMRU" bson:"basePriceMRU"`
	PricePerKmMRU        float64 `json:"pricePerKmMRU" bson:"pricePerKmMRU"`
}

// OrderInvoiceSettings holds order and invoice defaults.
type OrderInvoiceSettings struct {
	DefaultCommissionPercent float64 `json:"defaultCommissionPercent" bson:"defaultCommissionPercent"`
	InvoiceFooter            string  `json:"invoiceFooter,omitempty" bson:"invoiceFooter,omitempty"`
}

// NotificationSettings holds per-channel notification toggles.
type NotificationSettings struct {
	Toggles map[string]bool `json:"toggles" bson:"toggles"`
}

// RoleSettings maps a role name to the permissions it grants. A role holding
// the wildcard permission "*" is granted everything.
type RoleSettings struct {
	Permissions map[string][]string `json:"permissions" bson:"permissions"`
}

// HasPermission reports whether the role grants the permission.
func (r RoleSettings) HasPermission(role, permission string) bool {
	for _, p := range r.Permissions[role] {
		if p == permission || p == "*" {
			return true
		}
	}
	return false
}

// UserAccount is an entry in the staff user list.
type UserAccount struct {
	ID     string `json:"id" bson:"id"`
	Name   string `json:"name" bson:"name"`
	Phone  string `json:"phone,omitempty" bson:"phone,omitempty"`
	Role   string `json:"role" bson:"role"`
	Active bool   `json:"active" bson:"active"`
}

// DefaultDocument returns a minimally valid configuration used before any
// version has ever been published.
func DefaultDocument() ConfigurationDocument {
	return ConfigurationDocument{
		Currencies: CurrencySettings{
			BaseCurrency: "MRU",
			Rates:        map[string]float64{},
		},
		Shipping:    ShippingSettings{Types: []ShippingType{}},
		Commissions: CommissionSettings{Policies: []CommissionPolicy{}},
		Warehouse: WarehouseSettings{
			Drawers:                   []Drawer{},
			FullAlertThresholdPercent: 80,
		},
		Delivery: DeliverySettings{
			CourierProfitPercent: 50,
		},
		OrdersInvoices: OrderInvoiceSettings{
			DefaultCommissionPercent: 5,
		},
		Notifications: NotificationSettings{Toggles: map[string]bool{}},
		Roles:         RoleSettings{Permissions: map[string][]string{}},
		Users:         []UserAccount{},
	}
}
