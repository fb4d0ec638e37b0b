package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/budgetctl/internal/adapter/driven/api"
	"github.com/ericfisherdev/budgetctl/internal/domain/model"
	"github.com/ericfisherdev/budgetctl/internal/domain/port/driven"
)

type sentRequest struct {
	method string
	path   string
	opts   driven.RequestOptions
}

// fakeGateway records requests and replays a canned response.
type fakeGateway struct {
	body []byte
	err  error
	sent []sentRequest
}

func (f *fakeGateway) Send(_ context.Context, method, path string, opts driven.RequestOptions) ([]byte, error) {
	f.sent = append(f.sent, sentRequest{method: method, path: path, opts: opts})
	return f.body, f.err
}

func (f *fakeGateway) last(t *testing.T) sentRequest {
	t.Helper()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

func TestLogin_ReturnsToken(t *testing.T) {
	gw := &fakeGateway{body: []byte(`{"jwtToken":"abc.def.ghi"}`)}
	client := api.NewClient(gw)

	token, err := client.Login(context.Background(), "ann@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "abc.def.ghi", token)
	req := gw.last(t)
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/auth/login", req.path)
	assert.NotNil(t, req.opts.Body)
}

func TestLogin_MissingTokenIsUnknown(t *testing.T) {
	client := api.NewClient(&fakeGateway{body: []byte(`{}`)})

	_, err := client.Login(context.Background(), "ann@example.com", "secret123")

	assert.ErrorIs(t, err, model.ErrUnknown)
}

func TestLogin_PropagatesGatewayError(t *testing.T) {
	want := &model.APIError{Kind: model.ErrorKindAuthentication, Status: http.StatusUnauthorized}
	client := api.NewClient(&fakeGateway{err: want})

	_, err := client.Login(context.Background(), "ann@example.com", "wrong")

	assert.ErrorIs(t, err, model.ErrAuthentication)
}

func TestRegister_ReturnsMessage(t *testing.T) {
	gw := &fakeGateway{body: []byte(`{"message":"User registered successfully!"}`)}
	client := api.NewClient(gw)

	msg, err := client.Register(context.Background(), "Ann Lee", "ann@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "User registered successfully!", msg)
	assert.Equal(t, "/auth/register", gw.last(t).path)
}

func TestListNotifications_SanitizesMessages(t *testing.T) {
	gw := &fakeGateway{body: []byte(`[
		{"id":1,"message":"<b>Groceries</b> budget &amp; more at 90%","type":"BUDGET_THRESHOLD","isRead":false,"createdAt":"2024-05-01T10:00:00Z"},
		{"id":2,"message":"plain","isRead":true}
	]`)}
	client := api.NewClient(gw)

	items, err := client.ListNotifications(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, "Groceries budget & more at 90%", items[0].Message)
	assert.Equal(t, model.NotificationTypeBudgetThreshold, items[0].Type)
	assert.False(t, items[0].IsRead)
	assert.Equal(t, 2024, items[0].CreatedAt.Year())
	assert.Equal(t, "plain", items[1].Message)
	assert.True(t, items[1].IsRead)
	assert.True(t, gw.last(t).opts.NoCache)
}

func TestListNotifications_NullBodyIsEmpty(t *testing.T) {
	client := api.NewClient(&fakeGateway{body: []byte(`null`)})

	items, err := client.ListNotifications(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestListNotifications_MalformedBodyIsUnknown(t *testing.T) {
	client := api.NewClient(&fakeGateway{body: []byte(`{"not":"a list"}`)})

	_, err := client.ListNotifications(context.Background())

	assert.ErrorIs(t, err, model.ErrUnknown)
}

func TestMarkNotificationRead_Path(t *testing.T) {
	gw := &fakeGateway{}
	client := api.NewClient(gw)

	require.NoError(t, client.MarkNotificationRead(context.Background(), 42))

	req := gw.last(t)
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/notifications/42/mark-as-read", req.path)
	assert.Nil(t, req.opts.Body)
}

func TestListTransactions_SendsPeriod(t *testing.T) {
	gw := &fakeGateway{body: []byte(`[{"id":7,"categoryId":3,"categoryName":"Food","categoryType":"EXPENSE","amount":12.50,"description":"lunch","transactionDate":"2024-05-02"}]`)}
	client := api.NewClient(gw)

	txs, err := client.ListTransactions(context.Background(), 2024, 5)
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "12.50", txs[0].Amount.String())
	assert.Equal(t, model.CategoryTypeExpense, txs[0].CategoryType)
	req := gw.last(t)
	assert.Equal(t, "/transactions", req.path)
	assert.Equal(t, "2024", req.opts.Params.Get("year"))
	assert.Equal(t, "5", req.opts.Params.Get("month"))
}

func TestDashboard_Decodes(t *testing.T) {
	gw := &fakeGateway{body: []byte(`{
		"totalIncome":3000,"totalExpense":1250.75,"netBalance":1749.25,
		"spendingByCategory":[{"categoryName":"Food","total":400}],
		"budgetStatus":[{"categoryName":"Food","budgeted":500,"spent":400,"remaining":100}]
	}`)}
	client := api.NewClient(gw)

	dash, err := client.Dashboard(context.Background(), 2024, 5)
	require.NoError(t, err)

	assert.Equal(t, "1749.25", dash.NetBalance.String())
	require.Len(t, dash.SpendingByCategory, 1)
	require.Len(t, dash.BudgetStatus, 1)
	assert.Equal(t, "100", dash.BudgetStatus[0].Remaining.String())
	assert.Equal(t, "/transactions/dashboard", gw.last(t).path)
}

func TestDeleteCategory_Path(t *testing.T) {
	gw := &fakeGateway{}
	client := api.NewClient(gw)

	require.NoError(t, client.DeleteCategory(context.Background(), 9))

	req := gw.last(t)
	assert.Equal(t, http.MethodDelete, req.method)
	assert.Equal(t, "/categories/9", req.path)
}

func TestSetBudget_PostsRequest(t *testing.T) {
	gw := &fakeGateway{body: []byte(`{"id":4,"categoryId":3,"categoryName":"Food","amount":500,"month":"2024-05"}`)}
	client := api.NewClient(gw)

	budget, err := client.SetBudget(context.Background(), model.BudgetRequest{CategoryID: 3, Amount: "500", Year: 2024, Month: 5})
	require.NoError(t, err)

	assert.Equal(t, int64(4), budget.ID)
	assert.Equal(t, "2024-05", budget.Month)
	assert.Equal(t, "/budgets", gw.last(t).path)
}
