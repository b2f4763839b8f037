package domain

// MappingKind distinguishes the four ways a product can bind a GL account.
type MappingKind string

const (
	MappingRegular         MappingKind = "REGULAR"           // by role only
	MappingPaymentType     MappingKind = "PAYMENT_TYPE"      // role + payment type (fund source variants)
	MappingCharge          MappingKind = "CHARGE"            // fee/penalty income keyed by charge
	MappingChargeOffReason MappingKind = "CHARGE_OFF_REASON" // expense keyed by charge-off reason
)

// ProductToAccountMapping associates (product, role or discriminator) with a
// concrete GL account. Exactly one mapping may exist per tuple; the posting
// engine treats absence as a configuration error, never as "skip".
//
// Mappings are created by product configuration administration and are
// read-only from the posting engine's perspective.
type ProductToAccountMapping struct {
	MappingID         string               `json:"mappingID"`
	ProductID         string               `json:"productID"`
	ProductType       PortfolioProductType `json:"productType"`
	Role              AccountRole          `json:"role"`
	GLAccountID       string               `json:"glAccountID"`
	PaymentTypeID     *string              `json:"paymentTypeID,omitempty"`
	ChargeID          *string              `json:"chargeID,omitempty"`
	ChargeOffReasonID *string              `json:"chargeOffReasonID,omitempty"`
	AuditFields
}

// Kind derives the mapping kind from which discriminator is set.
func (m ProductToAccountMapping) Kind() MappingKind {
	switch {
	case m.PaymentTypeID != nil:
		return MappingPaymentType
	case m.ChargeID != nil:
		return MappingCharge
	case m.ChargeOffReasonID != nil:
		return MappingChargeOffReason
	default:
		return MappingRegular
	}
}
