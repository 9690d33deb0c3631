package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/obsidianwallet/obsidian-netswitch/common"
	"github.com/obsidianwallet/obsidian-netswitch/database"
	"github.com/obsidianwallet/obsidian-netswitch/netselect"
	"github.com/obsidianwallet/obsidian-netswitch/walletmanager"
)

type fakeController struct {
	views        []netselect.OptionView
	active       common.NetworkIdentifier
	busy         bool
	failed       bool
	switchErr    error
	lastSwitchTo common.NetworkIdentifier
}

func (f *fakeController) Views() []netselect.OptionView    { return f.views }
func (f *fakeController) Active() common.NetworkIdentifier { return f.active }
func (f *fakeController) Busy() bool                       { return f.busy }

func (f *fakeController) ConsumeSwitchFailure() bool {
	failed := f.failed
	f.failed = false
	return failed
}

func (f *fakeController) RequestSwitch(ctx context.Context, target common.NetworkIdentifier) error {
	f.lastSwitchTo = target
	return f.switchErr
}

type fakeHistory struct {
	records []database.SwitchRecord
}

func (f *fakeHistory) History(limit int) ([]database.SwitchRecord, error) {
	if limit > 0 && limit < len(f.records) {
		return f.records[:limit], nil
	}
	return f.records, nil
}

func newTestAPI(ctrl NetworkController, history SwitchHistory) *APIService {
	gin.SetMode(gin.TestMode)
	return &APIService{address: "127.0.0.1:0", ctrl: ctrl, history: history}
}

func doRequest(t *testing.T, api *APIService, method, path string, body []byte) map[string]json.RawMessage {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept-Encoding", "identity")
	rec := httptest.NewRecorder()
	api.buildRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("%s %s status=%d", method, path, rec.Code)
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid response body %q: %v", rec.Body.String(), err)
	}
	return payload
}

func TestListNetworksRendersViews(t *testing.T) {
	ctrl := &fakeController{
		active: "devnet",
		views: []netselect.OptionView{
			{Option: common.NetworkOption{Title: "Devnet", Identifier: "devnet"}, IsChecked: true, IsEnabled: true},
			{Option: common.NetworkOption{Title: "Localhost", Identifier: "localhost", IsLocal: true}, IsEnabled: false},
		},
	}
	api := newTestAPI(ctrl, &fakeHistory{})

	payload := doRequest(t, api, http.MethodGet, "/v1/network/list", nil)
	var views []NetworkView
	if err := json.Unmarshal(payload["result"], &views); err != nil {
		t.Fatalf("bad result: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if !views[0].IsChecked || views[0].Identifier != "devnet" {
		t.Fatalf("devnet must be checked: %+v", views[0])
	}
	if views[1].IsEnabled || !views[1].IsLocal {
		t.Fatalf("localhost must be a disabled local option: %+v", views[1])
	}
}

func TestSwitchNetworkAccepted(t *testing.T) {
	ctrl := &fakeController{active: "devnet", busy: true}
	api := newTestAPI(ctrl, &fakeHistory{})

	body, _ := json.Marshal(SwitchRequest{Network: "localhost"})
	payload := doRequest(t, api, http.MethodPost, "/v1/network/switch", body)

	if _, hasErr := payload["error"]; hasErr {
		t.Fatalf("unexpected error: %s", payload["error"])
	}
	if ctrl.lastSwitchTo != "localhost" {
		t.Fatalf("controller asked to switch to %q, want localhost", ctrl.lastSwitchTo)
	}
}

func TestSwitchNetworkRejected(t *testing.T) {
	ctrl := &fakeController{active: "devnet", switchErr: netselect.ErrNetworkDisabled}
	api := newTestAPI(ctrl, &fakeHistory{})

	body, _ := json.Marshal(SwitchRequest{Network: "localhost"})
	payload := doRequest(t, api, http.MethodPost, "/v1/network/switch", body)

	if _, hasErr := payload["error"]; !hasErr {
		t.Fatalf("expected error for disabled target")
	}
}

func TestNetworkStatusConsumesFailureFlag(t *testing.T) {
	ctrl := &fakeController{active: "devnet", failed: true}
	api := newTestAPI(ctrl, &fakeHistory{})

	payload := doRequest(t, api, http.MethodGet, "/v1/network/status", nil)
	var failed bool
	if err := json.Unmarshal(payload["switchFailed"], &failed); err != nil || !failed {
		t.Fatalf("first status read must report the failure, got %s", payload["switchFailed"])
	}

	payload = doRequest(t, api, http.MethodGet, "/v1/network/status", nil)
	if err := json.Unmarshal(payload["switchFailed"], &failed); err != nil || failed {
		t.Fatalf("second status read must not repeat the failure")
	}
}

func TestCurrentNetworkIncludesServiceURLs(t *testing.T) {
	ctrl := &fakeController{
		active: "devnet",
		views: []netselect.OptionView{
			{Option: common.NetworkOption{
				Title:       "Devnet",
				Identifier:  "devnet",
				ServiceURLs: []string{"https://api-coinservice-staging.example"},
			}, IsChecked: true, IsEnabled: true},
		},
	}
	api := newTestAPI(ctrl, &fakeHistory{})

	payload := doRequest(t, api, http.MethodGet, "/v1/network/current", nil)
	var id string
	if err := json.Unmarshal(payload["result"], &id); err != nil || id != "devnet" {
		t.Fatalf("result=%s, want devnet", payload["result"])
	}
	var urls []string
	if err := json.Unmarshal(payload["serviceURLs"], &urls); err != nil {
		t.Fatalf("bad serviceURLs: %v", err)
	}
	if len(urls) != 1 || urls[0] != "https://api-coinservice-staging.example" {
		t.Fatalf("serviceURLs=%v, want the active option's service endpoint", urls)
	}
}

func TestUpdateAccountRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := database.InitDatabase(t.TempDir())
	if err != nil {
		t.Fatalf("InitDatabase() err=%v", err)
	}
	t.Cleanup(func() { db.DB.Close() })

	wlm, err := walletmanager.InitWallet(db)
	if err != nil {
		t.Fatalf("InitWallet() err=%v", err)
	}
	key, err := wlm.AddNewAccount(walletmanager.Account{
		Name:           "old name",
		Type:           walletmanager.WatchOnly,
		PaymentAddress: "addr-9",
	})
	if err != nil {
		t.Fatalf("AddNewAccount() err=%v", err)
	}

	api := &APIService{wlm: wlm, ctrl: &fakeController{}, history: &fakeHistory{}}

	body, _ := json.Marshal(UpdateAccountRequest{Account: key, Name: "new name", Note: "rainy day"})
	payload := doRequest(t, api, http.MethodPost, "/v1/wallet/update_account", body)
	if _, hasErr := payload["error"]; hasErr {
		t.Fatalf("unexpected error: %s", payload["error"])
	}

	got := wlm.GetAccountInstance(key).Account()
	if got.Name != "new name" || got.Note != "rainy day" {
		t.Fatalf("account not updated: %+v", got)
	}

	body, _ = json.Marshal(UpdateAccountRequest{Account: "missing", Name: "x"})
	payload = doRequest(t, api, http.MethodPost, "/v1/wallet/update_account", body)
	if _, hasErr := payload["error"]; !hasErr {
		t.Fatalf("expected error for unknown account")
	}
}

func TestSwitchHistoryLimit(t *testing.T) {
	history := &fakeHistory{records: []database.SwitchRecord{
		{From: "devnet", To: "localhost", Succeeded: true},
		{From: "localhost", To: "devnet", Succeeded: false, Error: "connection refused"},
	}}
	api := newTestAPI(&fakeController{active: "devnet"}, history)

	payload := doRequest(t, api, http.MethodGet, "/v1/network/history?limit=1", nil)
	var records []database.SwitchRecord
	if err := json.Unmarshal(payload["result"], &records); err != nil {
		t.Fatalf("bad result: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record with limit=1, got %d", len(records))
	}
}
