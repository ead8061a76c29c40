package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Yasser-Essafi/SRM/internal/model"
	"github.com/Yasser-Essafi/SRM/internal/repository"
)

func demoResolver() *Resolver {
	store := repository.NewMemoryStore(repository.DemoDataset())
	return NewResolver(store, zerolog.Nop())
}

func TestResolveCanonicalNumber(t *testing.T) {
	r := demoResolver()

	record, err := r.Resolve(context.Background(), model.ServiceWater, "3701455886 / 1014871")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if record.Contract.ContractNumber != "3701455886 / 1014871" {
		t.Fatalf("contract = %q, want 3701455886 / 1014871", record.Contract.ContractNumber)
	}
	if record.Customer.UserID != 1 {
		t.Fatalf("user_id = %d, want 1", record.Customer.UserID)
	}
	if record.Service != model.ServiceWater {
		t.Fatalf("service = %q, want WATER", record.Service)
	}
}

func TestResolvePartialNumber(t *testing.T) {
	r := demoResolver()

	record, err := r.Resolve(context.Background(), model.ServiceWater, "3701455890")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if record.Contract.ContractNumber != "3701455890 / 1014875" {
		t.Fatalf("contract = %q, want 3701455890 / 1014875", record.Contract.ContractNumber)
	}
	if record.Customer.UserID != 5 {
		t.Fatalf("user_id = %d, want 5", record.Customer.UserID)
	}
}

func TestResolveNormalizesWhitespace(t *testing.T) {
	r := demoResolver()

	cases := []string{
		"  3701455886 / 1014871  ",
		"3701455886  /  1014871",
		"\t3701455886\t/\t1014871\n",
	}
	for _, input := range cases {
		record, err := r.Resolve(context.Background(), model.ServiceWater, input)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", input, err)
		}
		if record.Contract.ContractNumber != "3701455886 / 1014871" {
			t.Fatalf("Resolve(%q) = %q, want canonical number", input, record.Contract.ContractNumber)
		}
	}
}

func TestResolveWrongServiceTableIsNotFound(t *testing.T) {
	r := demoResolver()

	// A real electricity number is well-shaped, so looking it up as water
	// must report "not found", never "invalid format".
	_, err := r.Resolve(context.Background(), model.ServiceWater, "4801566997")
	if !errors.Is(err, ErrContractNotFound) {
		t.Fatalf("err = %v, want ErrContractNotFound", err)
	}

	var notFound *ContractNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %T, want *ContractNotFoundError", err)
	}
	if notFound.Service != model.ServiceWater {
		t.Fatalf("service = %q, want WATER", notFound.Service)
	}
	if !strings.HasPrefix(err.Error(), "WATER_CONTRACT_NOT_FOUND:") {
		t.Fatalf("error string = %q, want WATER_CONTRACT_NOT_FOUND prefix", err.Error())
	}
}

func TestResolveFullFormSkipsPrefixFallback(t *testing.T) {
	r := demoResolver()

	// The 10-digit segment exists but the invoice segment is wrong; a full
	// form input must not fall back to prefix matching.
	_, err := r.Resolve(context.Background(), model.ServiceWater, "3701455886 / 9999999")
	if !errors.Is(err, ErrContractNotFound) {
		t.Fatalf("err = %v, want ErrContractNotFound", err)
	}
}

func TestResolveInvalidFormat(t *testing.T) {
	r := demoResolver()

	cases := []string{
		"",
		"abc",
		"3701",
		"3701455886 / 123",
		"3701455886 / 10148711",
		"3701455886 1014871",
		"370145588a",
	}
	for _, input := range cases {
		_, err := r.Resolve(context.Background(), model.ServiceWater, input)
		if !errors.Is(err, ErrInvalidContractFormat) {
			t.Fatalf("Resolve(%q) err = %v, want ErrInvalidContractFormat", input, err)
		}
	}
}

func TestResolveInvalidService(t *testing.T) {
	r := demoResolver()

	_, err := r.Resolve(context.Background(), model.Service("GAS"), "3701455886")
	if !errors.Is(err, ErrInvalidService) {
		t.Fatalf("err = %v, want ErrInvalidService", err)
	}
}

func TestResolveAmbiguousPartialIsDeterministic(t *testing.T) {
	data := repository.Dataset{
		Customers: []model.Customer{
			{UserID: 1, Name: "A", ZoneID: 1},
			{UserID: 2, Name: "B", ZoneID: 1},
		},
		WaterContracts: []model.ServiceContract{
			{ContractNumber: "3701000000 / 2222222", UserID: 2, IsPaid: true, LastPaymentDate: time.Now(), CutStatus: model.CutStatusOK},
			{ContractNumber: "3701000000 / 1111111", UserID: 1, IsPaid: true, LastPaymentDate: time.Now(), CutStatus: model.CutStatusOK},
		},
		Zones: []model.Zone{{ZoneID: 1, ZoneName: "Z", MaintenanceStatus: model.MaintenanceNone}},
	}
	r := NewResolver(repository.NewMemoryStore(data), zerolog.Nop())

	for i := 0; i < 5; i++ {
		record, err := r.Resolve(context.Background(), model.ServiceWater, "3701000000")
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		if record.Contract.ContractNumber != "3701000000 / 1111111" {
			t.Fatalf("contract = %q, want first by contract number", record.Contract.ContractNumber)
		}
	}
}

func TestResolveMissingOwnerIsStoreFailure(t *testing.T) {
	data := repository.Dataset{
		WaterContracts: []model.ServiceContract{
			{ContractNumber: "3701000000 / 1111111", UserID: 42, IsPaid: true, LastPaymentDate: time.Now(), CutStatus: model.CutStatusOK},
		},
	}
	r := NewResolver(repository.NewMemoryStore(data), zerolog.Nop())

	_, err := r.Resolve(context.Background(), model.ServiceWater, "3701000000")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
	if errors.Is(err, ErrContractNotFound) {
		t.Fatal("a dangling owner must not look like an unknown contract")
	}
}
