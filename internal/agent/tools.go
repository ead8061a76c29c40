package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Yasser-Essafi/SRM/internal/model"
	"github.com/Yasser-Essafi/SRM/internal/service"
)

const (
	toolCheckWater       = "check_water_service"
	toolCheckElectricity = "check_electricity_service"
)

var contractArgSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"contract_number": {
			"type": "string",
			"description": "Full contract number like '3701455886 / 1014871' or the leading segment like '3701455886'."
		}
	},
	"required": ["contract_number"]
}`)

// Toolbox executes the model's tool calls against the status service.
type Toolbox struct {
	status *service.StatusService
}

func NewToolbox(status *service.StatusService) *Toolbox {
	return &Toolbox{status: status}
}

func (t *Toolbox) Specs() []ToolSpec {
	return []ToolSpec{
		{
			Name: toolCheckWater,
			Description: "Check payment status, cut status and zone maintenance for a water contract. " +
				"Use when the customer's problem concerns water.",
			Parameters: contractArgSchema,
		},
		{
			Name: toolCheckElectricity,
			Description: "Check payment status, cut status and zone maintenance for an electricity contract. " +
				"Use when the customer's problem concerns electricity.",
			Parameters: contractArgSchema,
		},
	}
}

type contractArgs struct {
	ContractNumber string `json:"contract_number"`
}

// Execute runs a single tool call and renders the result as a tagged text
// block. Lookup failures are rendered, not returned, so the model can relay
// them to the customer.
func (t *Toolbox) Execute(ctx context.Context, call ToolCall) string {
	var svc model.Service
	switch call.Name {
	case toolCheckWater:
		svc = model.ServiceWater
	case toolCheckElectricity:
		svc = model.ServiceElectricity
	default:
		return fmt.Sprintf("[UNKNOWN_TOOL]\nTool: %s", call.Name)
	}

	var args contractArgs
	if err := json.Unmarshal(call.Arguments, &args); err != nil {
		return fmt.Sprintf("[INVALID_TOOL_ARGUMENTS]\nError: %v", err)
	}

	report, err := t.status.Status(ctx, svc, args.ContractNumber)
	if err != nil {
		return renderError(svc, args.ContractNumber, err)
	}
	return renderReport(*report)
}

func renderError(svc model.Service, rawContract string, err error) string {
	switch {
	case errors.Is(err, service.ErrContractNotFound):
		return fmt.Sprintf(`[%s_CONTRACT_NOT_FOUND]
Contract: %s
Message: No %s contract matches this number. Ask the customer to verify it and try again.`,
			svc, rawContract, strings.ToLower(string(svc)))
	case errors.Is(err, service.ErrInvalidContractFormat):
		return fmt.Sprintf(`[INVALID_CONTRACT_FORMAT]
Input: %s
Message: This does not look like a valid contract number. Expected "%s" followed by 6 digits, optionally " / " and 7 more digits.`,
			rawContract, svc.ContractPrefix())
	default:
		return `[SERVICE_UNAVAILABLE]
Message: The customer records system could not be reached. Apologize and ask the customer to try again shortly.`
	}
}

func renderReport(report model.StatusReport) string {
	var b strings.Builder

	if report.IsPaid {
		b.WriteString("[PAYMENT_STATUS: PAID]\n")
	} else {
		b.WriteString("[PAYMENT_STATUS: UNPAID]\n")
	}
	fmt.Fprintf(&b, "Customer: %s\n", report.CustomerName)
	fmt.Fprintf(&b, "Service: %s\n", report.Service)
	fmt.Fprintf(&b, "Contract: %s\n", report.ContractNumber)
	fmt.Fprintf(&b, "Outstanding Balance: %.2f MAD\n", report.OutstandingBalance)
	fmt.Fprintf(&b, "Last Payment: %s\n", report.LastPaymentDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "Cut Status: %s\n", report.CutStatus)
	if report.CutReason != nil && *report.CutReason != "" {
		fmt.Fprintf(&b, "Cut Reason: %s\n", *report.CutReason)
	}

	b.WriteString("\n")
	switch {
	case hasWarning(report, model.WarningZoneUnavailable):
		b.WriteString("[ZONE_INFO_UNAVAILABLE]\nMessage: Zone maintenance data could not be checked right now.\n")
	case hasWarning(report, model.WarningZoneNotFound):
		b.WriteString("[ZONE_INFO_UNAVAILABLE]\nMessage: No zone information is available for this customer.\n")
	case report.ZoneMaintenanceActive:
		b.WriteString("[MAINTENANCE_IN_PROGRESS]\n")
		fmt.Fprintf(&b, "Zone: %s\n", report.ZoneName)
		if report.OutageReason != nil {
			fmt.Fprintf(&b, "Outage Reason: %s\n", *report.OutageReason)
		}
		if report.EstimatedRestoration != nil {
			fmt.Fprintf(&b, "Estimated Restoration: %s\n", report.EstimatedRestoration.Format("2006-01-02 15:04"))
		}
		fmt.Fprintf(&b, "Affected Service: %s\n", report.Service)
	default:
		b.WriteString("[NO_MAINTENANCE]\n")
		fmt.Fprintf(&b, "Zone: %s\n", report.ZoneName)
	}

	b.WriteString("\n")
	switch report.Cause {
	case model.CauseUnpaid:
		fmt.Fprintf(&b, "Conclusion: service problem is caused by the unpaid balance of %.2f MAD. Payment is required to restore service.\n", report.OutstandingBalance)
	case model.CauseMaintenance:
		b.WriteString("Conclusion: payment is up to date; the interruption is due to zone maintenance.\n")
	case model.CauseLocalFault:
		b.WriteString("[LOCAL_FAULT]\nConclusion: payment is up to date and no zone maintenance affects this service, yet it is cut off. This looks like a local technical issue (meter or connection).\n")
	default:
		b.WriteString("Conclusion: payment is up to date and no maintenance affects this service. Everything looks healthy.\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func hasWarning(report model.StatusReport, warning string) bool {
	for _, w := range report.Warnings {
		if w == warning {
			return true
		}
	}
	return false
}
