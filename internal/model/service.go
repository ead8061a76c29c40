package model

// Service selects which contract table a lookup runs against.
type Service string

const (
	ServiceWater       Service = "WATER"
	ServiceElectricity Service = "ELECTRICITY"
)

const (
	WaterContractPrefix       = "3701"
	ElectricityContractPrefix = "4801"
)

func (s Service) Valid() bool {
	return s == ServiceWater || s == ServiceElectricity
}

// ContractPrefix returns the four leading digits every contract number of
// this service starts with.
func (s Service) ContractPrefix() string {
	if s == ServiceElectricity {
		return ElectricityContractPrefix
	}
	return WaterContractPrefix
}
