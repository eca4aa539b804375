package wallet

import (
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/rules"
)

// MaxTransferAmount caps both sent and requested amounts, in dollars.
const MaxTransferAmount = 10000

// Due date choices for money requests.
const (
	DueImmediate = "immediate"
	DueOneDay    = "1day"
	DueOneWeek   = "1week"
	DueCustom    = "custom"
)

// DueDates lists the due date choices in display order.
var DueDates = []string{DueImmediate, DueOneDay, DueOneWeek, DueCustom}

var noteRule = rules.Chain(
	rules.MaxLength(140, "Note must be 140 characters or fewer"),
	rules.NoMarkup("Note cannot contain HTML"),
)

// SendMoney holds the send money flow values. Amount is kept as typed text.
type SendMoney struct {
	Recipient string `json:"recipient" yaml:"recipient"`
	Amount    string `json:"amount" yaml:"amount"`
	Note      string `json:"note" yaml:"note"`
}

var (
	SendRecipient = form.Bind("recipient",
		func(v SendMoney) string { return v.Recipient },
		func(v *SendMoney, s string) { v.Recipient = s },
		rules.Required("Recipient is required"),
	)
	SendAmount = form.Bind("amount",
		func(v SendMoney) string { return v.Amount },
		func(v *SendMoney, s string) { v.Amount = s },
		rules.Amount(MaxTransferAmount, rules.AmountMessages{
			Required: "Amount is required",
			Invalid:  "Please enter a valid amount",
			Max:      "Maximum transfer amount is $10,000",
		}),
	)
	SendNote = form.Bind("note",
		func(v SendMoney) string { return v.Note },
		func(v *SendMoney, s string) { v.Note = s },
		noteRule,
	)
	SendMoneySchema = form.MustSchema[SendMoney](SendRecipient, SendAmount, SendNote)
)

// RequestMoney holds the request money flow values.
type RequestMoney struct {
	Recipient string `json:"recipient" yaml:"recipient"`
	Amount    string `json:"amount" yaml:"amount"`
	Note      string `json:"note" yaml:"note"`
	DueDate   string `json:"dueDate" yaml:"dueDate"`
}

// NewRequestMoney returns the initial request values: nothing filled in, due
// immediately.
func NewRequestMoney() RequestMoney {
	return RequestMoney{DueDate: DueImmediate}
}

var (
	RequestRecipient = form.Bind("recipient",
		func(v RequestMoney) string { return v.Recipient },
		func(v *RequestMoney, s string) { v.Recipient = s },
		rules.Required("Recipient is required"),
	)
	RequestAmount = form.Bind("amount",
		func(v RequestMoney) string { return v.Amount },
		func(v *RequestMoney, s string) { v.Amount = s },
		rules.Amount(MaxTransferAmount, rules.AmountMessages{
			Required: "Amount is required",
			Invalid:  "Please enter a valid amount",
			Max:      "Maximum request amount is $10,000",
		}),
	)
	RequestNote = form.Bind("note",
		func(v RequestMoney) string { return v.Note },
		func(v *RequestMoney, s string) { v.Note = s },
		noteRule,
	)
	RequestDueDate = form.Bind("dueDate",
		func(v RequestMoney) string { return v.DueDate },
		func(v *RequestMoney, s string) { v.DueDate = s },
		rules.OneOf(DueDates, "Please choose a valid due date"),
	)
	RequestMoneySchema = form.MustSchema[RequestMoney](
		RequestRecipient,
		RequestAmount,
		RequestNote,
		RequestDueDate,
	)
)
