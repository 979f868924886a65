package selections_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "github.com/dalemusser/classhub/internal/app/features/errors"
	"github.com/dalemusser/classhub/internal/app/features/selections"
	"github.com/dalemusser/classhub/internal/app/store/docstore"
	selectionstore "github.com/dalemusser/classhub/internal/app/store/selections"
	userstore "github.com/dalemusser/classhub/internal/app/store/users"
	"github.com/dalemusser/classhub/internal/app/system/authz"
	"github.com/dalemusser/classhub/internal/app/system/validators"
	"github.com/dalemusser/classhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*selections.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := selections.NewHandler(selectionstore.New(db), apierrors.NewErrorLogger(logger), logger)
	return h, testutil.NewFixtures(t, db)
}

func TestServeCreate_Duplicates(t *testing.T) {
	h, _ := newTestHandler(t)
	body := map[string]any{
		"classId":      primitive.NewObjectID().Hex(),
		"studentEmail": "s@example.com",
		"title":        "Go",
		"price":        20,
	}

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeCreate(rec, testutil.JSONRequest(t, "POST", "/selectedClass", body))
		testutil.AssertStatus(t, rec, http.StatusOK)
	}

	rec := httptest.NewRecorder()
	h.ServeList(rec, httptest.NewRequest("GET", "/selectedClass?email=s@example.com", nil))
	var list []map[string]any
	testutil.DecodeEnvelope(t, rec, &list)
	if len(list) != 2 {
		t.Errorf("selections = %d, want 2", len(list))
	}
}

func TestServeCreate_MissingStudent(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeCreate(rec, testutil.JSONRequest(t, "POST", "/selectedClass", map[string]any{"classId": "abc"}))
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rec, apierrors.CodeValidation)
}

func TestServeList_FilterByEmail(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateSelection(ctx, primitive.NewObjectID(), "a@example.com")
	fx.CreateSelection(ctx, primitive.NewObjectID(), "b@example.com")

	rec := httptest.NewRecorder()
	h.ServeList(rec, httptest.NewRequest("GET", "/selectedClass?email=a@example.com", nil))
	var list []map[string]any
	testutil.DecodeEnvelope(t, rec, &list)
	if len(list) != 1 || list[0]["studentEmail"] != "a@example.com" {
		t.Errorf("selections = %v", list)
	}

	rec = httptest.NewRecorder()
	h.ServeList(rec, httptest.NewRequest("GET", "/selectedClass", nil))
	testutil.DecodeEnvelope(t, rec, &list)
	if len(list) != 2 {
		t.Errorf("all selections = %d, want 2", len(list))
	}
}

func TestServeDelete(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := fx.CreateSelection(ctx, primitive.NewObjectID(), "a@example.com")

	rec := httptest.NewRecorder()
	h.ServeDelete(rec, testutil.WithChiURLParam(httptest.NewRequest("DELETE", "/selectedClass/"+s.ID.Hex(), nil), "id", s.ID.Hex()))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var res docstore.DeleteResult
	testutil.DecodeEnvelope(t, rec, &res)
	if res.DeletedCount != 1 {
		t.Errorf("deletedCount = %d, want 1", res.DeletedCount)
	}
}

func TestServeDelete_InvalidID(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeDelete(rec, testutil.WithChiURLParam(httptest.NewRequest("DELETE", "/selectedClass/zzz", nil), "id", "zzz"))
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rec, apierrors.CodeInvalidID)
}

func TestServeDeleteAll(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateSelection(ctx, primitive.NewObjectID(), "a@example.com")
	fx.CreateSelection(ctx, primitive.NewObjectID(), "a@example.com")
	fx.CreateSelection(ctx, primitive.NewObjectID(), "b@example.com")

	before, err := fx.DB().Collection(selectionstore.CollectionName).CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeDeleteAll(rec, httptest.NewRequest("DELETE", "/selectedClass", nil))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var res docstore.DeleteResult
	testutil.DecodeEnvelope(t, rec, &res)
	if res.DeletedCount != before {
		t.Errorf("deletedCount = %d, want %d", res.DeletedCount, before)
	}

	rec = httptest.NewRecorder()
	h.ServeList(rec, httptest.NewRequest("GET", "/selectedClass", nil))
	env := testutil.DecodeEnvelope(t, rec, nil)
	if string(env.Data) != "[]" {
		t.Errorf("list after clear = %s, want []", env.Data)
	}
}

func TestServeDeleteAll_OneStudent(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateSelection(ctx, primitive.NewObjectID(), "a@example.com")
	fx.CreateSelection(ctx, primitive.NewObjectID(), "b@example.com")

	rec := httptest.NewRecorder()
	h.ServeDeleteAll(rec, httptest.NewRequest("DELETE", "/selectedClass?email=a@example.com", nil))

	var res docstore.DeleteResult
	testutil.DecodeEnvelope(t, rec, &res)
	if res.DeletedCount != 1 {
		t.Errorf("deletedCount = %d, want 1", res.DeletedCount)
	}
}

func TestRoutes_OwnerMayListOwn(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateStudent(ctx, "a@example.com")

	policy := authz.New(authz.ModeEnforce, userstore.New(fx.DB()), h.ErrLog.Deny, zap.NewNop())
	router := selections.Routes(h, policy)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.AsCaller(httptest.NewRequest("GET", "/?email=a@example.com", nil), "a@example.com"))
	testutil.AssertStatus(t, rec, http.StatusOK)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.AsCaller(httptest.NewRequest("GET", "/?email=b@example.com", nil), "a@example.com"))
	testutil.AssertStatus(t, rec, http.StatusForbidden)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.AsCaller(httptest.NewRequest("DELETE", "/", nil), "a@example.com"))
	testutil.AssertStatus(t, rec, http.StatusForbidden)
}

func TestServeCreate_StoredTypesMatchCollectionRules(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := validators.EnsureAll(ctx, fx.DB()); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	rejected := []struct {
		name, body, field string
	}{
		{"price as string", `{"classId":"c1","studentEmail":"s@example.com","price":"20"}`, "price"},
		{"numeric classId", `{"classId":12345,"studentEmail":"s@example.com"}`, "classId"},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeCreate(rec, testutil.JSONRequest(t, "POST", "/selectedClass", tt.body))
			testutil.AssertStatus(t, rec, http.StatusBadRequest)
			testutil.AssertErrorCode(t, rec, apierrors.CodeValidation)
			env := testutil.DecodeEnvelope(t, rec, nil)
			if env.Error.Fields[tt.field] == "" {
				t.Errorf("expected %s field error, got %s", tt.field, rec.Body.String())
			}
		})
	}

	rec := httptest.NewRecorder()
	h.ServeCreate(rec, testutil.JSONRequest(t, "POST", "/selectedClass",
		`{"classId":"c1","studentEmail":"s@example.com","title":"Go","price":20}`))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var stored bson.M
	if err := fx.DB().Collection("selectedClasses").FindOne(ctx, bson.M{"classId": "c1"}).Decode(&stored); err != nil {
		t.Fatalf("find selection: %v", err)
	}
	if stored["price"] != int64(20) {
		t.Errorf("price = %v (%T), want int64 20", stored["price"], stored["price"])
	}
}
