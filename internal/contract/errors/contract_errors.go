package contracterrors

import (
	"net/http"

	"github.com/Vietanh2703/BASMS-BE-sub001/internal/shared/apperror"
)

var (
	ErrCustomerNameMissing = apperror.New(
		apperror.CodeInvalidInput,
		"Customer name could not be extracted from the document",
		http.StatusUnprocessableEntity,
	)
	ErrEmptyDocumentText = apperror.New(
		apperror.CodeInvalidInput,
		"The document yielded no text",
		http.StatusUnprocessableEntity,
	)
	ErrContractNumberExists = apperror.New(
		apperror.CodeConflict,
		"A contract with this number already exists",
		http.StatusConflict,
	)
	ErrNoCurrentPeriod = apperror.New(
		apperror.CodeInvalidState,
		"Contract has no current period",
		http.StatusConflict,
	)
)
