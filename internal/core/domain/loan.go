package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanTransactionType is the closed set of loan lifecycle events the posting
// engine recognises. Unknown integer codes map to LoanTxnInvalid.
type LoanTransactionType int

const (
	LoanTxnInvalid                 LoanTransactionType = 0
	LoanTxnDisbursement            LoanTransactionType = 1
	LoanTxnRepayment               LoanTransactionType = 2
	LoanTxnWaiveInterest           LoanTransactionType = 4
	LoanTxnRepaymentAtDisbursement LoanTransactionType = 5
	LoanTxnWriteOff                LoanTransactionType = 6
	LoanTxnRecoveryRepayment       LoanTransactionType = 8
	LoanTxnWaiveCharges            LoanTransactionType = 9
	LoanTxnAccrual                 LoanTransactionType = 10
	LoanTxnRefund                  LoanTransactionType = 16
	LoanTxnChargePayment           LoanTransactionType = 17
	LoanTxnRefundForActiveLoan     LoanTransactionType = 18
	LoanTxnCreditBalanceRefund     LoanTransactionType = 20
	LoanTxnMerchantIssuedRefund    LoanTransactionType = 21
	LoanTxnPayoutRefund            LoanTransactionType = 22
	LoanTxnGoodwillCredit          LoanTransactionType = 23
	LoanTxnChargeRefund            LoanTransactionType = 24
	LoanTxnChargeback              LoanTransactionType = 25
	LoanTxnChargeAdjustment        LoanTransactionType = 26
	LoanTxnChargeOff               LoanTransactionType = 27
	LoanTxnAccrualAdjustment       LoanTransactionType = 31
)

// LoanTransactionTypeFromValue maps an integer code to a transaction type.
// Unknown codes map to LoanTxnInvalid rather than failing, to tolerate data
// written by newer versions.
func LoanTransactionTypeFromValue(v int) LoanTransactionType {
	switch t := LoanTransactionType(v); t {
	case LoanTxnDisbursement, LoanTxnRepayment, LoanTxnWaiveInterest,
		LoanTxnRepaymentAtDisbursement, LoanTxnWriteOff, LoanTxnRecoveryRepayment,
		LoanTxnWaiveCharges, LoanTxnAccrual, LoanTxnRefund, LoanTxnChargePayment,
		LoanTxnRefundForActiveLoan, LoanTxnCreditBalanceRefund,
		LoanTxnMerchantIssuedRefund, LoanTxnPayoutRefund, LoanTxnGoodwillCredit,
		LoanTxnChargeRefund, LoanTxnChargeback, LoanTxnChargeAdjustment,
		LoanTxnChargeOff, LoanTxnAccrualAdjustment:
		return t
	default:
		return LoanTxnInvalid
	}
}

func (t LoanTransactionType) String() string {
	switch t {
	case LoanTxnDisbursement:
		return "DISBURSEMENT"
	case LoanTxnRepayment:
		return "REPAYMENT"
	case LoanTxnWaiveInterest:
		return "WAIVE_INTEREST"
	case LoanTxnRepaymentAtDisbursement:
		return "REPAYMENT_AT_DISBURSEMENT"
	case LoanTxnWriteOff:
		return "WRITE_OFF"
	case LoanTxnRecoveryRepayment:
		return "RECOVERY_REPAYMENT"
	case LoanTxnWaiveCharges:
		return "WAIVE_CHARGES"
	case LoanTxnAccrual:
		return "ACCRUAL"
	case LoanTxnRefund:
		return "REFUND"
	case LoanTxnChargePayment:
		return "CHARGE_PAYMENT"
	case LoanTxnRefundForActiveLoan:
		return "REFUND_FOR_ACTIVE_LOAN"
	case LoanTxnCreditBalanceRefund:
		return "CREDIT_BALANCE_REFUND"
	case LoanTxnMerchantIssuedRefund:
		return "MERCHANT_ISSUED_REFUND"
	case LoanTxnPayoutRefund:
		return "PAYOUT_REFUND"
	case LoanTxnGoodwillCredit:
		return "GOODWILL_CREDIT"
	case LoanTxnChargeRefund:
		return "CHARGE_REFUND"
	case LoanTxnChargeback:
		return "CHARGEBACK"
	case LoanTxnChargeAdjustment:
		return "CHARGE_ADJUSTMENT"
	case LoanTxnChargeOff:
		return "CHARGE_OFF"
	case LoanTxnAccrualAdjustment:
		return "ACCRUAL_ADJUSTMENT"
	default:
		return "INVALID"
	}
}

// AccountingRuleType is the accounting method configured on a product.
type AccountingRuleType int

const (
	AccountingRuleNone            AccountingRuleType = 1
	AccountingRuleCash            AccountingRuleType = 2
	AccountingRuleAccrualPeriodic AccountingRuleType = 3
	AccountingRuleAccrualUpfront  AccountingRuleType = 4
)

// ChargePayment is the portion of a transaction that paid one specific charge.
type ChargePayment struct {
	ChargeID  string          `json:"chargeID"`
	IsPenalty bool            `json:"isPenalty"`
	Amount    decimal.Decimal `json:"amount"`
}

// LoanTransaction is an immutable snapshot of one loan transaction's monetary
// breakdown, produced once by the transaction assembler and consumed exactly
// once by the accounting processor. The processor never mutates it.
type LoanTransaction struct {
	TransactionID string              `json:"transactionID"`
	OfficeID      string              `json:"officeID"`
	Type          LoanTransactionType `json:"type"`
	Date          time.Time           `json:"date"`
	PaymentTypeID *string             `json:"paymentTypeID,omitempty"`

	Amount             decimal.Decimal `json:"amount"`
	PrincipalPortion   decimal.Decimal `json:"principalPortion"`
	InterestPortion    decimal.Decimal `json:"interestPortion"`
	FeesPortion        decimal.Decimal `json:"feesPortion"`
	PenaltiesPortion   decimal.Decimal `json:"penaltiesPortion"`
	OverpaymentPortion decimal.Decimal `json:"overpaymentPortion"`

	FeePayments     []ChargePayment `json:"feePayments,omitempty"`
	PenaltyPayments []ChargePayment `json:"penaltyPayments,omitempty"`

	// Chargeback reconstruction amounts: what was originally credited vs what
	// has since been paid back, per component.
	PrincipalCredited decimal.Decimal `json:"principalCredited"`
	FeeCredited       decimal.Decimal `json:"feeCredited"`
	PenaltyCredited   decimal.Decimal `json:"penaltyCredited"`

	// Charge adjustment / charge refund discriminators.
	AdjustedChargeID        *string `json:"adjustedChargeID,omitempty"`
	AdjustedChargeIsPenalty bool    `json:"adjustedChargeIsPenalty"`

	Reversed             bool `json:"reversed"`
	IsAccountTransfer    bool `json:"isAccountTransfer"`
	IsLoanToLoanTransfer bool `json:"isLoanToLoanTransfer"`
}

// Loan carries the loan-level facts the posting engine needs: product and
// office identity plus the status flags that steer account selection.
type Loan struct {
	LoanID            string             `json:"loanID"`
	ProductID         string             `json:"productID"`
	OfficeID          string             `json:"officeID"`
	CurrencyCode      string             `json:"currencyCode"`
	AccountingRule    AccountingRuleType `json:"accountingRule"`
	IsChargedOff      bool               `json:"isChargedOff"`
	IsFraud           bool               `json:"isFraud"`
	ChargeOffReasonID *string            `json:"chargeOffReasonID,omitempty"`

	// FeeIncomeOnCollection recognises fee income directly on repayment
	// (per-charge income accounts) instead of crediting fees receivable.
	FeeIncomeOnCollection bool `json:"feeIncomeOnCollection"`
}
