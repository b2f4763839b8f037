package domain

// GLAccountType is the fundamental financial-statement classification of a
// general ledger account.
type GLAccountType string

const (
	GLAsset     GLAccountType = "ASSET"
	GLLiability GLAccountType = "LIABILITY"
	GLEquity    GLAccountType = "EQUITY"
	GLIncome    GLAccountType = "INCOME"
	GLExpense   GLAccountType = "EXPENSE"
)

// GLAccount represents one general ledger account movements are posted to.
type GLAccount struct {
	GLAccountID string        `json:"glAccountID"`
	GLCode      string        `json:"glCode"`
	Name        string        `json:"name"`
	Type        GLAccountType `json:"type"`
	IsActive    bool          `json:"isActive"`
	AuditFields
}

// FinancialActivity identifies an organisation-wide account used for special
// flows. When a transaction is part of an account transfer the fund source
// side is replaced by one of these accounts.
type FinancialActivity int

const (
	FinancialActivityAssetTransfer     FinancialActivity = 100
	FinancialActivityLiabilityTransfer FinancialActivity = 200
)

// PortfolioProductType discriminates which product family a GL mapping
// belongs to.
type PortfolioProductType int

const (
	ProductTypeInvalid PortfolioProductType = 0
	ProductTypeLoan    PortfolioProductType = 1
	ProductTypeSavings PortfolioProductType = 2
	ProductTypeShares  PortfolioProductType = 4
)

func (t PortfolioProductType) String() string {
	switch t {
	case ProductTypeLoan:
		return "LOAN"
	case ProductTypeSavings:
		return "SAVINGS"
	case ProductTypeShares:
		return "SHARES"
	default:
		return "INVALID"
	}
}

// AccountRole is the integer code of a semantic account role within one
// product family. The typed enums below (LoanAccrualRole and friends) are the
// closed sets; they all funnel into this code for mapping lookups.
type AccountRole int

// LoanAccrualRole enumerates the account roles configurable on a loan product
// under accrual accounting.
type LoanAccrualRole AccountRole

const (
	LoanAccrualFundSource                       LoanAccrualRole = 1
	LoanAccrualLoanPortfolio                    LoanAccrualRole = 2
	LoanAccrualInterestOnLoans                  LoanAccrualRole = 3
	LoanAccrualIncomeFromFees                   LoanAccrualRole = 4
	LoanAccrualIncomeFromPenalties              LoanAccrualRole = 5
	LoanAccrualLossesWrittenOff                 LoanAccrualRole = 6
	LoanAccrualInterestReceivable               LoanAccrualRole = 7
	LoanAccrualFeesReceivable                   LoanAccrualRole = 8
	LoanAccrualPenaltiesReceivable              LoanAccrualRole = 9
	LoanAccrualTransfersSuspense                LoanAccrualRole = 10
	LoanAccrualOverpayment                      LoanAccrualRole = 11
	LoanAccrualIncomeFromRecovery               LoanAccrualRole = 12
	LoanAccrualGoodwillCredit                   LoanAccrualRole = 13
	LoanAccrualIncomeFromChargeOffFees          LoanAccrualRole = 14
	LoanAccrualIncomeFromChargeOffPenalty       LoanAccrualRole = 15
	LoanAccrualIncomeFromGoodwillCreditInterest LoanAccrualRole = 16
	LoanAccrualIncomeFromGoodwillCreditFees     LoanAccrualRole = 17
	LoanAccrualIncomeFromGoodwillCreditPenalty  LoanAccrualRole = 18
	LoanAccrualChargeOffExpense                 LoanAccrualRole = 19
	LoanAccrualChargeOffFraudExpense            LoanAccrualRole = 20
	LoanAccrualIncomeFromChargeOffInterest      LoanAccrualRole = 21
)

func (r LoanAccrualRole) Value() AccountRole { return AccountRole(r) }

func (r LoanAccrualRole) String() string {
	switch r {
	case LoanAccrualFundSource:
		return "FUND_SOURCE"
	case LoanAccrualLoanPortfolio:
		return "LOAN_PORTFOLIO"
	case LoanAccrualInterestOnLoans:
		return "INTEREST_ON_LOANS"
	case LoanAccrualIncomeFromFees:
		return "INCOME_FROM_FEES"
	case LoanAccrualIncomeFromPenalties:
		return "INCOME_FROM_PENALTIES"
	case LoanAccrualLossesWrittenOff:
		return "LOSSES_WRITTEN_OFF"
	case LoanAccrualInterestReceivable:
		return "INTEREST_RECEIVABLE"
	case LoanAccrualFeesReceivable:
		return "FEES_RECEIVABLE"
	case LoanAccrualPenaltiesReceivable:
		return "PENALTIES_RECEIVABLE"
	case LoanAccrualTransfersSuspense:
		return "TRANSFERS_SUSPENSE"
	case LoanAccrualOverpayment:
		return "OVERPAYMENT"
	case LoanAccrualIncomeFromRecovery:
		return "INCOME_FROM_RECOVERY"
	case LoanAccrualGoodwillCredit:
		return "GOODWILL_CREDIT"
	case LoanAccrualIncomeFromChargeOffFees:
		return "INCOME_FROM_CHARGE_OFF_FEES"
	case LoanAccrualIncomeFromChargeOffPenalty:
		return "INCOME_FROM_CHARGE_OFF_PENALTY"
	case LoanAccrualIncomeFromGoodwillCreditInterest:
		return "INCOME_FROM_GOODWILL_CREDIT_INTEREST"
	case LoanAccrualIncomeFromGoodwillCreditFees:
		return "INCOME_FROM_GOODWILL_CREDIT_FEES"
	case LoanAccrualIncomeFromGoodwillCreditPenalty:
		return "INCOME_FROM_GOODWILL_CREDIT_PENALTY"
	case LoanAccrualChargeOffExpense:
		return "CHARGE_OFF_EXPENSE"
	case LoanAccrualChargeOffFraudExpense:
		return "CHARGE_OFF_FRAUD_EXPENSE"
	case LoanAccrualIncomeFromChargeOffInterest:
		return "INCOME_FROM_CHARGE_OFF_INTEREST"
	default:
		return "INVALID"
	}
}

// LoanCashRole enumerates the account roles configurable on a loan product
// under cash accounting. Receivable accounts do not exist here: income is
// recognised directly on collection.
type LoanCashRole AccountRole

const (
	LoanCashFundSource                  LoanCashRole = 1
	LoanCashLoanPortfolio               LoanCashRole = 2
	LoanCashInterestOnLoans             LoanCashRole = 3
	LoanCashIncomeFromFees              LoanCashRole = 4
	LoanCashIncomeFromPenalties         LoanCashRole = 5
	LoanCashLossesWrittenOff            LoanCashRole = 6
	LoanCashTransfersSuspense           LoanCashRole = 10
	LoanCashOverpayment                 LoanCashRole = 11
	LoanCashIncomeFromRecovery          LoanCashRole = 12
	LoanCashGoodwillCredit              LoanCashRole = 13
	LoanCashIncomeFromChargeOffFees     LoanCashRole = 14
	LoanCashIncomeFromChargeOffPenalty  LoanCashRole = 15
	LoanCashChargeOffExpense            LoanCashRole = 19
	LoanCashChargeOffFraudExpense       LoanCashRole = 20
	LoanCashIncomeFromChargeOffInterest LoanCashRole = 21
)

func (r LoanCashRole) Value() AccountRole { return AccountRole(r) }

func (r LoanCashRole) String() string {
	switch r {
	case LoanCashFundSource:
		return "FUND_SOURCE"
	case LoanCashLoanPortfolio:
		return "LOAN_PORTFOLIO"
	case LoanCashInterestOnLoans:
		return "INTEREST_ON_LOANS"
	case LoanCashIncomeFromFees:
		return "INCOME_FROM_FEES"
	case LoanCashIncomeFromPenalties:
		return "INCOME_FROM_PENALTIES"
	case LoanCashLossesWrittenOff:
		return "LOSSES_WRITTEN_OFF"
	case LoanCashTransfersSuspense:
		return "TRANSFERS_SUSPENSE"
	case LoanCashOverpayment:
		return "OVERPAYMENT"
	case LoanCashIncomeFromRecovery:
		return "INCOME_FROM_RECOVERY"
	case LoanCashGoodwillCredit:
		return "GOODWILL_CREDIT"
	case LoanCashIncomeFromChargeOffFees:
		return "INCOME_FROM_CHARGE_OFF_FEES"
	case LoanCashIncomeFromChargeOffPenalty:
		return "INCOME_FROM_CHARGE_OFF_PENALTY"
	case LoanCashChargeOffExpense:
		return "CHARGE_OFF_EXPENSE"
	case LoanCashChargeOffFraudExpense:
		return "CHARGE_OFF_FRAUD_EXPENSE"
	case LoanCashIncomeFromChargeOffInterest:
		return "INCOME_FROM_CHARGE_OFF_INTEREST"
	default:
		return "INVALID"
	}
}

// SavingsAccrualRole enumerates the account roles configurable on a savings
// product under accrual accounting.
type SavingsAccrualRole AccountRole

const (
	SavingsAccrualSavingsReference    SavingsAccrualRole = 1
	SavingsAccrualSavingsControl      SavingsAccrualRole = 2
	SavingsAccrualInterestOnSavings   SavingsAccrualRole = 3
	SavingsAccrualIncomeFromFees      SavingsAccrualRole = 4
	SavingsAccrualIncomeFromPenalties SavingsAccrualRole = 5
	SavingsAccrualTransfersSuspense   SavingsAccrualRole = 10
	SavingsAccrualOverdraftPortfolio  SavingsAccrualRole = 11
	SavingsAccrualIncomeFromInterest  SavingsAccrualRole = 12
	SavingsAccrualLossesWrittenOff    SavingsAccrualRole = 13
	SavingsAccrualEscheatLiability    SavingsAccrualRole = 14
	SavingsAccrualInterestPayable     SavingsAccrualRole = 15
)

func (r SavingsAccrualRole) Value() AccountRole { return AccountRole(r) }

func (r SavingsAccrualRole) String() string {
	switch r {
	case SavingsAccrualSavingsReference:
		return "SAVINGS_REFERENCE"
	case SavingsAccrualSavingsControl:
		return "SAVINGS_CONTROL"
	case SavingsAccrualInterestOnSavings:
		return "INTEREST_ON_SAVINGS"
	case SavingsAccrualIncomeFromFees:
		return "INCOME_FROM_FEES"
	case SavingsAccrualIncomeFromPenalties:
		return "INCOME_FROM_PENALTIES"
	case SavingsAccrualTransfersSuspense:
		return "TRANSFERS_SUSPENSE"
	case SavingsAccrualOverdraftPortfolio:
		return "OVERDRAFT_PORTFOLIO"
	case SavingsAccrualIncomeFromInterest:
		return "INCOME_FROM_INTEREST"
	case SavingsAccrualLossesWrittenOff:
		return "LOSSES_WRITTEN_OFF"
	case SavingsAccrualEscheatLiability:
		return "ESCHEAT_LIABILITY"
	case SavingsAccrualInterestPayable:
		return "INTEREST_PAYABLE"
	default:
		return "INVALID"
	}
}

// SavingsCashRole enumerates the account roles configurable on a savings
// product under cash accounting.
type SavingsCashRole AccountRole

const (
	SavingsCashSavingsReference    SavingsCashRole = 1
	SavingsCashSavingsControl      SavingsCashRole = 2
	SavingsCashInterestOnSavings   SavingsCashRole = 3
	SavingsCashIncomeFromFees      SavingsCashRole = 4
	SavingsCashIncomeFromPenalties SavingsCashRole = 5
	SavingsCashTransfersSuspense   SavingsCashRole = 10
	SavingsCashOverdraftPortfolio  SavingsCashRole = 11
	SavingsCashIncomeFromInterest  SavingsCashRole = 12
	SavingsCashLossesWrittenOff    SavingsCashRole = 13
	SavingsCashEscheatLiability    SavingsCashRole = 14
)

func (r SavingsCashRole) Value() AccountRole { return AccountRole(r) }

func (r SavingsCashRole) String() string {
	switch r {
	case SavingsCashSavingsReference:
		return "SAVINGS_REFERENCE"
	case SavingsCashSavingsControl:
		return "SAVINGS_CONTROL"
	case SavingsCashInterestOnSavings:
		return "INTEREST_ON_SAVINGS"
	case SavingsCashIncomeFromFees:
		return "INCOME_FROM_FEES"
	case SavingsCashIncomeFromPenalties:
		return "INCOME_FROM_PENALTIES"
	case SavingsCashTransfersSuspense:
		return "TRANSFERS_SUSPENSE"
	case SavingsCashOverdraftPortfolio:
		return "OVERDRAFT_PORTFOLIO"
	case SavingsCashIncomeFromInterest:
		return "INCOME_FROM_INTEREST"
	case SavingsCashLossesWrittenOff:
		return "LOSSES_WRITTEN_OFF"
	case SavingsCashEscheatLiability:
		return "ESCHEAT_LIABILITY"
	default:
		return "INVALID"
	}
}

// SharesCashRole enumerates the account roles configurable on a share product.
type SharesCashRole AccountRole

const (
	SharesCashSharesReference SharesCashRole = 1
	SharesCashSharesSuspense  SharesCashRole = 2
	SharesCashIncomeFromFees  SharesCashRole = 3
	SharesCashSharesEquity    SharesCashRole = 4
)

func (r SharesCashRole) Value() AccountRole { return AccountRole(r) }

func (r SharesCashRole) String() string {
	switch r {
	case SharesCashSharesReference:
		return "SHARES_REFERENCE"
	case SharesCashSharesSuspense:
		return "SHARES_SUSPENSE"
	case SharesCashIncomeFromFees:
		return "INCOME_FROM_FEES"
	case SharesCashSharesEquity:
		return "SHARES_EQUITY"
	default:
		return "INVALID"
	}
}
