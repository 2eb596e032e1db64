package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	TripServiceName       = "tripsplit.v1.TripService"
	ExpenseServiceName    = "tripsplit.v1.ExpenseService"
	SettlementServiceName = "tripsplit.v1.SettlementService"
	SharedServiceName     = "tripsplit.v1.SharedService"
)

const (
	TripServiceCreateTripProcedure         = "/tripsplit.v1.TripService/CreateTrip"
	TripServiceGetTripProcedure            = "/tripsplit.v1.TripService/GetTrip"
	TripServiceListTripsProcedure          = "/tripsplit.v1.TripService/ListTrips"
	TripServiceUpdateTripProcedure         = "/tripsplit.v1.TripService/UpdateTrip"
	TripServiceDeleteTripProcedure         = "/tripsplit.v1.TripService/DeleteTrip"
	TripServiceAddCollaboratorProcedure    = "/tripsplit.v1.TripService/AddCollaborator"
	TripServiceRemoveCollaboratorProcedure = "/tripsplit.v1.TripService/RemoveCollaborator"

	ExpenseServiceAddExpenseProcedure    = "/tripsplit.v1.ExpenseService/AddExpense"
	ExpenseServiceUpdateExpenseProcedure = "/tripsplit.v1.ExpenseService/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure = "/tripsplit.v1.ExpenseService/DeleteExpense"
	ExpenseServiceListExpensesProcedure  = "/tripsplit.v1.ExpenseService/ListExpenses"

	SettlementServiceGetSettlementProcedure   = "/tripsplit.v1.SettlementService/GetSettlement"
	SettlementServiceCreateShareLinkProcedure = "/tripsplit.v1.SettlementService/CreateShareLink"
	SettlementServiceRevokeShareLinkProcedure = "/tripsplit.v1.SettlementService/RevokeShareLink"

	SharedServiceGetSharedSettlementProcedure = "/tripsplit.v1.SharedService/GetSharedSettlement"
)

// TripServiceHandler is implemented by the trip service.
type TripServiceHandler interface {
	CreateTrip(context.Context, *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error)
	UpdateTrip(context.Context, *connect.Request[UpdateTripRequest]) (*connect.Response[UpdateTripResponse], error)
	DeleteTrip(context.Context, *connect.Request[DeleteTripRequest]) (*connect.Response[DeleteTripResponse], error)
	AddCollaborator(context.Context, *connect.Request[AddCollaboratorRequest]) (*connect.Response[AddCollaboratorResponse], error)
	RemoveCollaborator(context.Context, *connect.Request[RemoveCollaboratorRequest]) (*connect.Response[RemoveCollaboratorResponse], error)
}

// ExpenseServiceHandler is implemented by the expense service.
type ExpenseServiceHandler interface {
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
}

// SettlementServiceHandler is implemented by the settlement service.
type SettlementServiceHandler interface {
	GetSettlement(context.Context, *connect.Request[GetSettlementRequest]) (*connect.Response[GetSettlementResponse], error)
	CreateShareLink(context.Context, *connect.Request[CreateShareLinkRequest]) (*connect.Response[CreateShareLinkResponse], error)
	RevokeShareLink(context.Context, *connect.Request[RevokeShareLinkRequest]) (*connect.Response[RevokeShareLinkResponse], error)
}

// SharedServiceHandler serves settlements to holders of a share token.
type SharedServiceHandler interface {
	GetSharedSettlement(context.Context, *connect.Request[GetSharedSettlementRequest]) (*connect.Response[GetSharedSettlementResponse], error)
}

// NewTripServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(TripServiceCreateTripProcedure, connect.NewUnaryHandler(TripServiceCreateTripProcedure, svc.CreateTrip, opts...))
	mux.Handle(TripServiceGetTripProcedure, connect.NewUnaryHandler(TripServiceGetTripProcedure, svc.GetTrip, opts...))
	mux.Handle(TripServiceListTripsProcedure, connect.NewUnaryHandler(TripServiceListTripsProcedure, svc.ListTrips, opts...))
	mux.Handle(TripServiceUpdateTripProcedure, connect.NewUnaryHandler(TripServiceUpdateTripProcedure, svc.UpdateTrip, opts...))
	mux.Handle(TripServiceDeleteTripProcedure, connect.NewUnaryHandler(TripServiceDeleteTripProcedure, svc.DeleteTrip, opts...))
	mux.Handle(TripServiceAddCollaboratorProcedure, connect.NewUnaryHandler(TripServiceAddCollaboratorProcedure, svc.AddCollaborator, opts...))
	mux.Handle(TripServiceRemoveCollaboratorProcedure, connect.NewUnaryHandler(TripServiceRemoveCollaboratorProcedure, svc.RemoveCollaborator, opts...))
	return "/" + TripServiceName + "/", mux
}

// NewExpenseServiceHandler builds an HTTP handler from the service implementation.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ExpenseServiceAddExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(ExpenseServiceUpdateExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, opts...))
	mux.Handle(ExpenseServiceDeleteExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...))
	mux.Handle(ExpenseServiceListExpensesProcedure, connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...))
	return "/" + ExpenseServiceName + "/", mux
}

// NewSettlementServiceHandler builds an HTTP handler from the service implementation.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(SettlementServiceGetSettlementProcedure, connect.NewUnaryHandler(SettlementServiceGetSettlementProcedure, svc.GetSettlement, opts...))
	mux.Handle(SettlementServiceCreateShareLinkProcedure, connect.NewUnaryHandler(SettlementServiceCreateShareLinkProcedure, svc.CreateShareLink, opts...))
	mux.Handle(SettlementServiceRevokeShareLinkProcedure, connect.NewUnaryHandler(SettlementServiceRevokeShareLinkProcedure, svc.RevokeShareLink, opts...))
	return "/" + SettlementServiceName + "/", mux
}

// NewSharedServiceHandler builds an HTTP handler from the service implementation.
// Callers are expected to install a share token interceptor.
func NewSharedServiceHandler(svc SharedServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(SharedServiceGetSharedSettlementProcedure, connect.NewUnaryHandler(SharedServiceGetSharedSettlementProcedure, svc.GetSharedSettlement, opts...))
	return "/" + SharedServiceName + "/", mux
}

// TripServiceClient is a client for the tripsplit.v1.TripService service.
type TripServiceClient struct {
	createTrip         *connect.Client[CreateTripRequest, CreateTripResponse]
	getTrip            *connect.Client[GetTripRequest, GetTripResponse]
	listTrips          *connect.Client[ListTripsRequest, ListTripsResponse]
	updateTrip         *connect.Client[UpdateTripRequest, UpdateTripResponse]
	deleteTrip         *connect.Client[DeleteTripRequest, DeleteTripResponse]
	addCollaborator    *connect.Client[AddCollaboratorRequest, AddCollaboratorResponse]
	removeCollaborator *connect.Client[RemoveCollaboratorRequest, RemoveCollaboratorResponse]
}

// NewTripServiceClient constructs a client for the tripsplit.v1.TripService
// service. baseURL is the server root, e.g. http://localhost:8080.
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *TripServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &TripServiceClient{
		createTrip:         connect.NewClient[CreateTripRequest, CreateTripResponse](httpClient, baseURL+TripServiceCreateTripProcedure, opts...),
		getTrip:            connect.NewClient[GetTripRequest, GetTripResponse](httpClient, baseURL+TripServiceGetTripProcedure, opts...),
		listTrips:          connect.NewClient[ListTripsRequest, ListTripsResponse](httpClient, baseURL+TripServiceListTripsProcedure, opts...),
		updateTrip:         connect.NewClient[UpdateTripRequest, UpdateTripResponse](httpClient, baseURL+TripServiceUpdateTripProcedure, opts...),
		deleteTrip:         connect.NewClient[DeleteTripRequest, DeleteTripResponse](httpClient, baseURL+TripServiceDeleteTripProcedure, opts...),
		addCollaborator:    connect.NewClient[AddCollaboratorRequest, AddCollaboratorResponse](httpClient, baseURL+TripServiceAddCollaboratorProcedure, opts...),
		removeCollaborator: connect.NewClient[RemoveCollaboratorRequest, RemoveCollaboratorResponse](httpClient, baseURL+TripServiceRemoveCollaboratorProcedure, opts...),
	}
}

func (c *TripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) GetTrip(ctx context.Context, req *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) ListTrips(ctx context.Context, req *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

func (c *TripServiceClient) UpdateTrip(ctx context.Context, req *connect.Request[UpdateTripRequest]) (*connect.Response[UpdateTripResponse], error) {
	return c.updateTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) DeleteTrip(ctx context.Context, req *connect.Request[DeleteTripRequest]) (*connect.Response[DeleteTripResponse], error) {
	return c.deleteTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) AddCollaborator(ctx context.Context, req *connect.Request[AddCollaboratorRequest]) (*connect.Response[AddCollaboratorResponse], error) {
	return c.addCollaborator.CallUnary(ctx, req)
}

func (c *TripServiceClient) RemoveCollaborator(ctx context.Context, req *connect.Request[RemoveCollaboratorRequest]) (*connect.Response[RemoveCollaboratorResponse], error) {
	return c.removeCollaborator.CallUnary(ctx, req)
}

// ExpenseServiceClient is a client for the tripsplit.v1.ExpenseService service.
type ExpenseServiceClient struct {
	addExpense    *connect.Client[AddExpenseRequest, AddExpenseResponse]
	updateExpense *connect.Client[UpdateExpenseRequest, UpdateExpenseResponse]
	deleteExpense *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
	listExpenses  *connect.Client[ListExpensesRequest, ListExpensesResponse]
}

// NewExpenseServiceClient constructs a client for the tripsplit.v1.ExpenseService service.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ExpenseServiceClient{
		addExpense:    connect.NewClient[AddExpenseRequest, AddExpenseResponse](httpClient, baseURL+ExpenseServiceAddExpenseProcedure, opts...),
		updateExpense: connect.NewClient[UpdateExpenseRequest, UpdateExpenseResponse](httpClient, baseURL+ExpenseServiceUpdateExpenseProcedure, opts...),
		deleteExpense: connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
		listExpenses:  connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...),
	}
}

func (c *ExpenseServiceClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

// SettlementServiceClient is a client for the tripsplit.v1.SettlementService service.
type SettlementServiceClient struct {
	getSettlement   *connect.Client[GetSettlementRequest, GetSettlementResponse]
	createShareLink *connect.Client[CreateShareLinkRequest, CreateShareLinkResponse]
	revokeShareLink *connect.Client[RevokeShareLinkRequest, RevokeShareLinkResponse]
}

// NewSettlementServiceClient constructs a client for the tripsplit.v1.SettlementService service.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &SettlementServiceClient{
		getSettlement:   connect.NewClient[GetSettlementRequest, GetSettlementResponse](httpClient, baseURL+SettlementServiceGetSettlementProcedure, opts...),
		createShareLink: connect.NewClient[CreateShareLinkRequest, CreateShareLinkResponse](httpClient, baseURL+SettlementServiceCreateShareLinkProcedure, opts...),
		revokeShareLink: connect.NewClient[RevokeShareLinkRequest, RevokeShareLinkResponse](httpClient, baseURL+SettlementServiceRevokeShareLinkProcedure, opts...),
	}
}

func (c *SettlementServiceClient) GetSettlement(ctx context.Context, req *connect.Request[GetSettlementRequest]) (*connect.Response[GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) CreateShareLink(ctx context.Context, req *connect.Request[CreateShareLinkRequest]) (*connect.Response[CreateShareLinkResponse], error) {
	return c.createShareLink.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) RevokeShareLink(ctx context.Context, req *connect.Request[RevokeShareLinkRequest]) (*connect.Response[RevokeShareLinkResponse], error) {
	return c.revokeShareLink.CallUnary(ctx, req)
}

// SharedServiceClient is a client for the tripsplit.v1.SharedService service.
// Set the share token with req.Header().Set("Authorization", "Bearer "+token).
type SharedServiceClient struct {
	getSharedSettlement *connect.Client[GetSharedSettlementRequest, GetSharedSettlementResponse]
}

// NewSharedServiceClient constructs a client for the tripsplit.v1.SharedService service.
func NewSharedServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SharedServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &SharedServiceClient{
		getSharedSettlement: connect.NewClient[GetSharedSettlementRequest, GetSharedSettlementResponse](httpClient, baseURL+SharedServiceGetSharedSettlementProcedure, opts...),
	}
}

func (c *SharedServiceClient) GetSharedSettlement(ctx context.Context, req *connect.Request[GetSharedSettlementRequest]) (*connect.Response[GetSharedSettlementResponse], error) {
	return c.getSharedSettlement.CallUnary(ctx, req)
}
