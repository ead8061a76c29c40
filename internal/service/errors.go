package service

import (
	"errors"
	"fmt"

	"github.com/Yasser-Essafi/SRM/internal/model"
)

var (
	ErrContractNotFound      = errors.New("contract not found")
	ErrInvalidContractFormat = errors.New("invalid contract format")
	ErrInvalidService        = errors.New("invalid service")
	ErrStoreUnavailable      = errors.New("backing store unavailable")
	ErrPermissionDenied      = errors.New("permission denied")
)

// ContractNotFoundError carries the service and the raw user input so the
// caller can echo the number back when asking the user to re-enter it.
type ContractNotFoundError struct {
	Service  model.Service
	RawInput string
}

func (e *ContractNotFoundError) Error() string {
	return fmt.Sprintf("%s_CONTRACT_NOT_FOUND:%s", e.Service, e.RawInput)
}

func (e *ContractNotFoundError) Unwrap() error { return ErrContractNotFound }
