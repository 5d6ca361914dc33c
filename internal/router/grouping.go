package router

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/tolga/fieldroute/internal/model"
)

// BuildGroups implements spec.md §4.3 Steps 1-2: sort the day's assets by
// (partner, service_time, asset_id), pack each partner's assets into groups
// bounded by the branch's daily capSec, and compute per-group aggregates.
func BuildGroups(in Input, report *model.Report) []model.Group {
	capSec := in.Branch.CapSeconds(in.Weekday)

	visits := make([]AssetVisit, 0, len(in.Visits))
	for _, v := range in.Visits {
		if _, ok := in.Partners[v.Partner]; !ok {
			report.Add(model.Diagnostic{
				Code:    model.CodeUnknownPartner,
				Message: "asset references a partner not present in the partner table",
				Branch:  in.Branch.ID,
				Partner: v.Partner.Code(),
				Asset:   v.Asset.Code(),
			})
			continue
		}
		visits = append(visits, v)
	}

	sort.Slice(visits, func(i, j int) bool {
		if visits[i].Partner.Code() != visits[j].Partner.Code() {
			return visits[i].Partner.Code() < visits[j].Partner.Code()
		}
		if visits[i].ServiceSec != visits[j].ServiceSec {
			return visits[i].ServiceSec < visits[j].ServiceSec
		}
		return visits[i].Asset.Code() < visits[j].Asset.Code()
	})

	var groups []model.Group
	var cur *model.Group

	flush := func() {
		if cur != nil {
			groups = append(groups, *cur)
		}
		cur = nil
	}

	var lastPartner model.PartnerID
	groupN := 0
	for _, v := range visits {
		partner := in.Partners[v.Partner]

		newPartner := cur == nil || lastPartner != v.Partner
		exceeds := cur != nil && !newPartner && cur.ServiceSec+v.ServiceSec+partner.EntrySec > capSec

		if newPartner {
			flush()
			groupN = 0
		} else if exceeds {
			flush()
			groupN++
		}

		if cur == nil {
			cur = &model.Group{
				ID:         uuid.New(),
				Label:      fmt.Sprintf("gP%sD%dG%d", partner.ID.Code(), in.Weekday, groupN),
				Branch:     in.Branch.ID,
				Supervisor: in.Supervisor,
				Weekday:    in.Weekday,
				Partner:    partner.ID,
				Point:      partner.Point,
				EntrySec:   partner.EntrySec,
				OpenSec:    partner.OpenSec,
				CloseSec:   partner.CloseSec,
			}
		}
		cur.Members = append(cur.Members, v.Asset)
		cur.ServiceSec += v.ServiceSec
		cur.WeekDemand += v.Frequency * v.ServiceSec
		lastPartner = v.Partner
	}
	flush()

	return groups
}
