package repository

import (
	"fmt"
	"time"

	"github.com/Yasser-Essafi/SRM/internal/model"
)

// Dataset is a full in-memory snapshot of the four tables. It backs the
// memory store and the demo seed for the postgres store.
type Dataset struct {
	Customers            []model.Customer
	WaterContracts       []model.ServiceContract
	ElectricityContracts []model.ServiceContract
	Zones                []model.Zone
}

// Validate checks load-time data integrity and returns one warning per
// violation. A cut-off contract is expected to carry a cut reason; violations
// are reported, not rejected.
func (d Dataset) Validate() []string {
	var warnings []string
	check := func(svc model.Service, contracts []model.ServiceContract) {
		for _, c := range contracts {
			if c.CutStatus == model.CutStatusCutOff && (c.CutReason == nil || *c.CutReason == "") {
				warnings = append(warnings, fmt.Sprintf("%s contract %s is CUT_OFF without a cut reason", svc, c.ContractNumber))
			}
		}
	}
	check(model.ServiceWater, d.WaterContracts)
	check(model.ServiceElectricity, d.ElectricityContracts)
	return warnings
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DemoDataset mirrors the demo tables the original deployment shipped with:
// five customers, eight contracts, four zones.
func DemoDataset() Dataset {
	unpaidReason := "رصيد غير مدفوع"

	return Dataset{
		Customers: []model.Customer{
			{UserID: 1, Name: "عبد النبي المرزوقي", Address: "شارع الحسن الثاني، الدار البيضاء", Phone: "0612345678", ZoneID: 1},
			{UserID: 2, Name: "أحمد الإدريسي", Address: "حي المحمدي، الرباط", Phone: "0698765432", ZoneID: 2},
			{UserID: 3, Name: "محمد السباعي", Address: "شارع محمد الخامس، الرباط", Phone: "0611223344", ZoneID: 2},
			{UserID: 4, Name: "خديجة العلوي", Address: "حي النخيل، مراكش", Phone: "0655667788", ZoneID: 3},
			{UserID: 5, Name: "يوسف الزرقطوني", Address: "شارع الزرقطوني، طنجة", Phone: "0699887766", ZoneID: 4},
		},
		WaterContracts: []model.ServiceContract{
			{ContractNumber: "3701455886 / 1014871", UserID: 1, IsPaid: true, OutstandingBalance: 0, LastPaymentDate: date(2024, time.November, 15), CutStatus: model.CutStatusOK},
			{ContractNumber: "3701455887 / 1014872", UserID: 2, IsPaid: true, OutstandingBalance: 0, LastPaymentDate: date(2024, time.November, 28), CutStatus: model.CutStatusOK},
			{ContractNumber: "3701455888 / 1014873", UserID: 3, IsPaid: true, OutstandingBalance: 0, LastPaymentDate: date(2024, time.November, 10), CutStatus: model.CutStatusOK},
			{ContractNumber: "3701455890 / 1014875", UserID: 5, IsPaid: false, OutstandingBalance: 890, LastPaymentDate: date(2024, time.August, 15), CutStatus: model.CutStatusCutOff, CutReason: strPtr(unpaidReason)},
		},
		ElectricityContracts: []model.ServiceContract{
			{ContractNumber: "4801566997 / 2025982", UserID: 1, IsPaid: true, OutstandingBalance: 0, LastPaymentDate: date(2024, time.November, 15), CutStatus: model.CutStatusOK},
			{ContractNumber: "4801566998 / 2025983", UserID: 3, IsPaid: true, OutstandingBalance: 0, LastPaymentDate: date(2024, time.November, 10), CutStatus: model.CutStatusOK},
			{ContractNumber: "4801566999 / 2025984", UserID: 4, IsPaid: true, OutstandingBalance: 0, LastPaymentDate: date(2024, time.November, 20), CutStatus: model.CutStatusOK},
			{ContractNumber: "4801567001 / 2025986", UserID: 5, IsPaid: false, OutstandingBalance: 450, LastPaymentDate: date(2024, time.September, 20), CutStatus: model.CutStatusCutOff, CutReason: strPtr(unpaidReason)},
		},
		Zones: []model.Zone{
			{
				ZoneID:               1,
				ZoneName:             "الدار البيضاء - وسط المدينة",
				MaintenanceStatus:    model.MaintenanceActive,
				OutageReason:         strPtr("إصلاح أنابيب المياه الرئيسية"),
				EstimatedRestoration: timePtr(time.Date(2024, time.December, 4, 18, 0, 0, 0, time.UTC)),
				AffectedServices:     []model.Service{model.ServiceWater},
				StatusUpdated:        time.Date(2024, time.December, 3, 8, 0, 0, 0, time.UTC),
			},
			{
				ZoneID:            2,
				ZoneName:          "الرباط - حي المحمدي",
				MaintenanceStatus: model.MaintenanceNone,
				StatusUpdated:     time.Date(2024, time.December, 1, 10, 0, 0, 0, time.UTC),
			},
			{
				ZoneID:               3,
				ZoneName:             "مراكش - القليعة",
				MaintenanceStatus:    model.MaintenanceActive,
				OutageReason:         strPtr("صيانة محولات الكهرباء"),
				EstimatedRestoration: timePtr(time.Date(2024, time.December, 5, 14, 0, 0, 0, time.UTC)),
				AffectedServices:     []model.Service{model.ServiceElectricity},
				StatusUpdated:        time.Date(2024, time.December, 3, 6, 0, 0, 0, time.UTC),
			},
			{
				ZoneID:               4,
				ZoneName:             "طنجة - المدينة القديمة",
				MaintenanceStatus:    model.MaintenanceActive,
				OutageReason:         strPtr("تحديث شبكة الكهرباء"),
				EstimatedRestoration: timePtr(time.Date(2024, time.December, 5, 20, 0, 0, 0, time.UTC)),
				AffectedServices:     []model.Service{model.ServiceElectricity},
				StatusUpdated:        time.Date(2024, time.December, 3, 6, 30, 0, 0, time.UTC),
			},
		},
	}
}
