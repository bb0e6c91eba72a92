package shipment

// DeliveryReceipt is the proof of delivery captured by the driver.
type DeliveryReceipt struct {
	ReceiverName      string
	ReceiverPhone     string
	PhotoURL          string
	Notes             string
	DriverConfirmed   bool
	ReceiverConfirmed bool
}
