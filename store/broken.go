package store

// Coupon marks Uses as transient but still compares it.
type Coupon struct {
	Code string
	Uses int `verify:"transient"`
}

func (c Coupon) Equal(o Coupon) bool {
	return c.Code == o.Code && c.Uses == o.Uses
}

func (c Coupon) Hash() int {
	return hashString(c.Code)
}

// Discount hashes Percent although Equal ignores it.
type Discount struct {
	Name    string
	Percent int
}

func (d Discount) Equal(o Discount) bool {
	return d.Name == o.Name
}

func (d Discount) Hash() int {
	return hashString(d.Name) + d.Percent
}

// Shipment delegates to a carrier that may be missing.
type Shipment struct {
	Tracking string
	Carrier  Carrier
}

// Carrier identifies a shipping provider.
type Carrier interface {
	Code() string
}

func (s *Shipment) Equal(o *Shipment) bool {
	if o == nil {
		return false
	}

	return s.Tracking == o.Tracking && s.Carrier.Code() == o.Carrier.Code()
}

func (s *Shipment) Hash() int {
	return hashString(s.Tracking)
}

// FedEx is a Carrier.
type FedEx struct{ Account string }

func (f FedEx) Code() string { return "FEDEX-" + f.Account }

// DefaultCarrier ships everything a Warehouse sends out.
//
//verify:nonnull
var DefaultCarrier Carrier = FedEx{Account: "main"}

// Warehouse compares through the package-level DefaultCarrier.
type Warehouse struct {
	Name string
}

func (w Warehouse) Equal(o Warehouse) bool {
	return w.Name == o.Name && DefaultCarrier.Code() != ""
}

func (w Warehouse) Hash() int {
	return hashString(w.Name)
}
