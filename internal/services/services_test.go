package services_test

import (
	"os"
	"testing"

	"github.com/budhip/go-autosave/internal/common/log"
	"github.com/budhip/go-autosave/internal/config"
	mockLedger "github.com/budhip/go-autosave/internal/ledger/mock"
	"github.com/budhip/go-autosave/internal/services"

	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	log.InitForTest()
	os.Exit(m.Run())
}

type testServiceHelper struct {
	mockCtrl         *gomock.Controller
	config           config.Config
	mockLedgerClient *mockLedger.MockClient

	autosaveService services.AutosaveService
}

func serviceTestHelper(t *testing.T, autosaveCfg config.AutosaveConfig) testServiceHelper {
	t.Helper()
	t.Parallel()

	mockCtrl := gomock.NewController(t)
	mockLedgerClient := mockLedger.NewMockClient(mockCtrl)

	conf := config.Config{
		Autosave: autosaveCfg,
	}

	svc := services.New(conf, mockLedgerClient, nil)

	return testServiceHelper{
		mockCtrl:         mockCtrl,
		config:           conf,
		mockLedgerClient: mockLedgerClient,
		autosaveService:  svc.Autosave,
	}
}

func defaultAutosaveConfig() config.AutosaveConfig {
	return config.AutosaveConfig{
		SourceAccountID:      1,
		DestinationAccountID: 2,
		RoundingUnit:         "20",
		MinimumBalance:       "20",
		TransactionType:      "withdrawal",
		Tag:                  "autosave",
		LinkTypeID:           1,
	}
}
