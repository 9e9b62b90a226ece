package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/PZavyalov/bank-account-service/internal/application/errs"
	"github.com/PZavyalov/bank-account-service/internal/application/interfaces"
	"github.com/PZavyalov/bank-account-service/internal/application/params"
	"github.com/PZavyalov/bank-account-service/internal/domain/entities"
	"github.com/PZavyalov/bank-account-service/internal/domain/entities/user"
	"github.com/PZavyalov/bank-account-service/internal/domain/result"
	"github.com/PZavyalov/bank-account-service/internal/interface/api/rest/header"
	"github.com/PZavyalov/bank-account-service/internal/interface/api/rest/request"
	"github.com/PZavyalov/bank-account-service/internal/interface/api/rest/response"
	"github.com/PZavyalov/bank-account-service/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type AccountController struct {
	service interfaces.AccountService
	logger  logger.Logger
}

// NewAccountController registers http.Handlers with additional options.
func NewAccountController(
	service interfaces.AccountService,
	logger logger.Logger,
	options ChiServerOptions,
) {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}

	c := AccountController{
		service: service,
		logger:  logger,
	}

	r.Group(func(r chi.Router) {
		for _, middleware := range options.Middlewares {
			r.Use(middleware)
		}
		r.Get(options.BaseURL+"/accounts", c.GetAccounts)
		r.Post(options.BaseURL+"/accounts", c.OpenAccount)
		r.Get(options.BaseURL+"/accounts/{number}", c.GetAccount)
		r.Delete(options.BaseURL+"/accounts/{number}", c.CloseAccount)
		r.Post(options.BaseURL+"/accounts/withdraw", c.Withdraw)
		r.Post(options.BaseURL+"/accounts/deposit", c.Deposit)
		r.Post(options.BaseURL+"/accounts/transfer", c.Transfer)
	})
}

// Open a new account for the signed-in user
// (POST /api/accounts HTTP/1.1).
func (c *AccountController) OpenAccount(w http.ResponseWriter, r *http.Request) {
	u, found := user.FromContext(r.Context())
	if !found {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var payload request.OpenAccount
	if !c.decode(w, r, &payload) {
		return
	}

	number, err := entities.NewAccountNumber(payload.Number)
	if err != nil {
		c.errorHandlerFunc(w, r, err)
		return
	}

	res := c.service.OpenAccount(r.Context(),
		params.NewOpenAccount(u.UserName, payload.Pin, number, payload.Deposit))
	if res.Failed() {
		writeFailure(w, c.logger, res.Kind, res.Message)
		return
	}

	writeJSON(w, c.logger, response.NewGetAccount(&res.Value))
}

// Get all accounts of the signed-in user (GET /api/accounts HTTP/1.1).
func (c *AccountController) GetAccounts(w http.ResponseWriter, r *http.Request) {
	u, found := user.FromContext(r.Context())
	if !found {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	res := c.service.GetAccounts(r.Context(), u.UserName)
	if res.Failed() {
		writeFailure(w, c.logger, res.Kind, res.Message)
		return
	}

	accounts := make([]*response.GetAccount, len(res.Value))
	for i := range res.Value {
		accounts[i] = response.NewGetAccount(&res.Value[i])
	}

	writeJSON(w, c.logger, accounts)
}

// Get one account of the signed-in user
// (GET /api/accounts/{number} HTTP/1.1).
func (c *AccountController) GetAccount(w http.ResponseWriter, r *http.Request) {
	u, found := user.FromContext(r.Context())
	if !found {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	number, ok := c.numberParam(w, r)
	if !ok {
		return
	}

	res := c.service.GetAccount(r.Context(), number)
	if res.Failed() {
		writeFailure(w, c.logger, res.Kind, res.Message)
		return
	}

	// Balances are visible to the account owner only.
	if res.Value.Owner != u.UserName {
		writeFailure(w, c.logger, result.NotFound,
			fmt.Sprintf("no account exists with account number %d", number))
		return
	}

	writeJSON(w, c.logger, response.NewGetAccount(&res.Value))
}

// Close an account of the signed-in user
// (DELETE /api/accounts/{number} HTTP/1.1).
func (c *AccountController) CloseAccount(w http.ResponseWriter, r *http.Request) {
	u, found := user.FromContext(r.Context())
	if !found {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	number, ok := c.numberParam(w, r)
	if !ok {
		return
	}

	owned := c.service.GetAccount(r.Context(), number)
	if owned.Failed() || owned.Value.Owner != u.UserName {
		writeFailure(w, c.logger, result.NotFound,
			fmt.Sprintf("no account exists with account number %d", number))
		return
	}

	res := c.service.CloseAccount(r.Context(), number)
	if res.Failed() {
		writeFailure(w, c.logger, res.Kind, res.Message)
		return
	}

	writeJSON(w, c.logger, response.NewGetAccount(&res.Value))
}

// Withdraw from an account (POST /api/accounts/withdraw HTTP/1.1).
func (c *AccountController) Withdraw(w http.ResponseWriter, r *http.Request) {
	var payload request.Withdraw
	if !c.decode(w, r, &payload) {
		return
	}

	number, err := entities.NewAccountNumber(payload.Number)
	if err != nil {
		c.errorHandlerFunc(w, r, err)
		return
	}

	res := c.service.WithdrawFromNumber(r.Context(), number, payload.Pin, payload.Amount)
	if res.Failed() {
		writeFailure(w, c.logger, res.Kind, res.Message)
		return
	}

	writeJSON(w, c.logger, response.NewTransfer(res.Value))
}

// Deposit into an account (POST /api/accounts/deposit HTTP/1.1).
func (c *AccountController) Deposit(w http.ResponseWriter, r *http.Request) {
	var payload request.Deposit
	if !c.decode(w, r, &payload) {
		return
	}

	number, err := entities.NewAccountNumber(payload.Number)
	if err != nil {
		c.errorHandlerFunc(w, r, err)
		return
	}

	p := params.NewDeposit(number, payload.Amount)
	if payload.FirstName != "" || payload.LastName != "" {
		p = params.NewVerifiedDeposit(payload.FirstName, payload.LastName, number, payload.Amount)
	}

	res := c.service.Deposit(r.Context(), p)
	if res.Failed() {
		writeFailure(w, c.logger, res.Kind, res.Message)
		return
	}

	writeJSON(w, c.logger, response.NewGetAccount(&res.Value))
}

// Transfer between two accounts (POST /api/accounts/transfer HTTP/1.1).
func (c *AccountController) Transfer(w http.ResponseWriter, r *http.Request) {
	var payload request.Transfer
	if !c.decode(w, r, &payload) {
		return
	}

	source, err := entities.NewAccountNumber(payload.Source)
	if err != nil {
		c.errorHandlerFunc(w, r, err)
		return
	}
	destination, err := entities.NewAccountNumber(payload.Destination)
	if err != nil {
		c.errorHandlerFunc(w, r, err)
		return
	}

	p := params.NewTransfer(source, payload.Pin, destination, payload.Amount)
	p.DestFirstName = payload.DestFirstName
	p.DestLastName = payload.DestLastName

	res := c.service.Transfer(r.Context(), p)
	if res.Failed() {
		writeFailure(w, c.logger, res.Kind, res.Message)
		return
	}

	writeJSON(w, c.logger, response.NewTransfer(res.Value))
}

// decode checks the content type and reads the JSON payload. It
// reports whether the handler should proceed.
func (c *AccountController) decode(w http.ResponseWriter, r *http.Request, payload any) bool {
	if !header.IsApplicationJSONContentType(r) {
		c.errorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return false
	}

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		c.errorHandlerFunc(w, r, checkJSONDecodeError(err))
		return false
	}

	return true
}

// numberParam parses the {number} URL parameter.
func (c *AccountController) numberParam(w http.ResponseWriter, r *http.Request) (entities.AccountNumber, bool) {
	raw, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		c.errorHandlerFunc(w, r, fmt.Errorf("%w: %s", errs.ErrInvalidAccountNumber, err))
		return 0, false
	}

	number, err := entities.NewAccountNumber(raw)
	if err != nil {
		c.errorHandlerFunc(w, r, err)
		return 0, false
	}

	return number, true
}

// errorHandlerFunc handles sending of a request-level error in the
// JSON format, writing appropriate status code and handling the
// failure to marshal that.
func (c *AccountController) errorHandlerFunc(w http.ResponseWriter, _ *http.Request, err error) {
	errJSON := errs.JSON{Error: err.Error()}
	code := http.StatusInternalServerError

	switch {
	// Status Bad Request (400).
	case errors.Is(err, errs.ErrInvalidRequest) ||
		errors.Is(err, errs.ErrInvalidAccountNumber):
		code = http.StatusBadRequest

	// Status Not Found (404).
	case errors.Is(err, errs.ErrNotFound):
		code = http.StatusNotFound

	// Status Conflict (409).
	case errors.Is(err, errs.ErrDataConflict):
		code = http.StatusConflict
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	c.logger.Debugf("account controller [%d]: %s", code, err)

	if err = json.NewEncoder(w).Encode(errJSON); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
