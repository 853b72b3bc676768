package main

import (
	"fmt"
	"strings"
	"time"

	"shipment-tracker/internal/features/shipments/classify"
	"shipment-tracker/internal/features/shipments/domain"
	"shipment-tracker/internal/features/shipments/service"
)

const dateLayout = "2006-01-02 15:04"

var (
	trackedTable = shipmentTable{
		headers: []string{"Tracking Number", "Status", "Location", "Updated", "Receiver", "Attention"},
	}
	summaryTable = shipmentTable{headers: []string{"Field", "Value"}}
	historyTable = shipmentTable{
		headers:      []string{"#", "Date", "Status", "Location", "Remark"},
		rightAligned: []int{0},
	}
	recentTable = shipmentTable{
		headers:      []string{"#", "Query"},
		rightAligned: []int{0},
	}
	statusTable = shipmentTable{
		headers:      []string{"Code", "Label", "Stage"},
		rightAligned: []int{2},
	}
)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatDate(*t)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// renderTrackedShipments lists one row per match with its current status.
func renderTrackedShipments(views []service.TrackedShipment) string {
	rows := make([]tableRow, 0, len(views))
	for _, v := range views {
		status, location, updated, problem := "No updates yet", "-", "-", false
		if v.CurrentStatus != nil {
			status = v.CurrentStatus.Classification.NormalizedLabel
			location = orDash(v.CurrentStatus.Location)
			updated = formatDate(v.CurrentStatus.Date)
			problem = v.CurrentStatus.Classification.IsProblem
		}
		attention := ""
		if v.Attention {
			attention = "check description"
		}
		rows = append(rows, tableRow{
			cells: []string{
				v.Shipment.TrackingNumber,
				status,
				location,
				updated,
				orDash(v.Shipment.Destination.ReceiverName),
				attention,
			},
			problem: problem,
		})
	}
	return trackedTable.render(rows)
}

// renderShipmentDetail prints the shipment summary followed by its history.
func renderShipmentDetail(v service.TrackedShipment) string {
	s := v.Shipment

	var b strings.Builder
	summary := []tableRow{
		{cells: []string{"Tracking Number", s.TrackingNumber}},
		{cells: []string{"Service", orDash(s.Details.ServiceType)}},
		{cells: []string{"Quantity", fmt.Sprintf("%d", s.Details.Quantity)}},
		{cells: []string{"Weight", orDash(s.Details.Weight)}},
		{cells: []string{"Description", orDash(s.Details.Description)}},
		{cells: []string{"Sender", orDash(s.Origin.SenderName)}},
		{cells: []string{"Origin", orDash(s.Origin.Location)}},
		{cells: []string{"Shipped", formatOptionalDate(s.Origin.ShipmentDate)}},
		{cells: []string{"Receiver", orDash(s.Destination.ReceiverName)}},
		{cells: []string{"Address", orDash(s.Destination.ReceiverAddress)}},
		{cells: []string{"Expected Delivery", formatOptionalDate(s.Destination.ExpectedDeliveryDate)}},
	}
	if v.CurrentStatus != nil {
		summary = append(summary, tableRow{
			cells:   []string{"Current Status", v.CurrentStatus.Classification.NormalizedLabel},
			problem: v.CurrentStatus.Classification.IsProblem,
		})
	}
	if v.Attention {
		summary = append(summary, tableRow{
			cells:   []string{"Attention", "description mentions a possible issue"},
			problem: true,
		})
	}
	b.WriteString(summaryTable.render(summary))
	b.WriteString("\n")

	if len(v.Events) == 0 {
		b.WriteString("No tracking history yet.\n")
		return b.String()
	}

	rows := make([]tableRow, 0, len(v.Events))
	for i, ev := range v.Events {
		rows = append(rows, tableRow{
			cells: []string{
				fmt.Sprintf("%d", i+1),
				formatDate(ev.Date),
				ev.Classification.NormalizedLabel,
				orDash(ev.Location),
				orDash(ev.Remark),
			},
			problem: ev.Classification.IsProblem,
		})
	}
	b.WriteString(historyTable.render(rows))
	b.WriteString("\n")
	return b.String()
}

// renderStatuses lists the closed status set with labels and problem flags.
func renderStatuses() string {
	rows := make([]tableRow, 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		c := classify.Classify(string(s))
		stage := "exception"
		if st := classify.LifecycleStage(string(s)); !st.Exception {
			stage = fmt.Sprintf("%d/%d", st.Index+1, classify.LifecycleLength())
		}
		rows = append(rows, tableRow{
			cells:   []string{string(s), c.NormalizedLabel, stage},
			problem: c.IsProblem,
		})
	}
	return statusTable.render(rows)
}
