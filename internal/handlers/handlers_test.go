package handlers

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	apperrors "github.com/lexcongreso/registration/internal/errors"
	"github.com/lexcongreso/registration/internal/i18n"
	"github.com/lexcongreso/registration/internal/middleware"
	"github.com/lexcongreso/registration/internal/model"
	"github.com/lexcongreso/registration/internal/payment"
	"github.com/lexcongreso/registration/internal/pricing"
	"github.com/lexcongreso/registration/internal/service"
	svcMocks "github.com/lexcongreso/registration/internal/service/mocks"
	"github.com/lexcongreso/registration/internal/session"
	"github.com/lexcongreso/registration/internal/validation"
	"github.com/lexcongreso/registration/internal/webhook"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testLeadID        = "5f0c7a1e-8a55-4d1e-9a3b-6f3f3b2c9d11"
	testSessionCookie = "checkout_session"
	sessionAlgorithm  = "EdDSA"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type handlersTestSuite struct {
	suite.Suite
	e                   *echo.Echo
	issuer              *session.Issuer
	leadSvcMock         *svcMocks.LeadService
	barristaSvcMock     *svcMocks.BarristaService
	checkoutSvcMock     *svcMocks.CheckoutService
	confirmationSvcMock *svcMocks.ConfirmationService
}

func (s *handlersTestSuite) SetupTest() {
	t := s.T()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	s.Require().NoError(err, "failed to generate session keys")

	method := jwt.GetSigningMethod(sessionAlgorithm)
	s.issuer = session.NewIssuer("handlers-test", method, time.Hour, priv)
	sessionValidator := session.NewValidator(method, pub)

	s.leadSvcMock = svcMocks.NewLeadService(t)
	s.barristaSvcMock = svcMocks.NewBarristaService(t)
	s.checkoutSvcMock = svcMocks.NewCheckoutService(t)
	s.confirmationSvcMock = svcMocks.NewConfirmationService(t)

	validator, err := validation.Echo(i18n.Default)
	s.Require().NoError(err, "failed to build validator")

	e := echo.New()
	e.Validator = validator
	e.HTTPErrorHandler = HTTPErrorHandler(e)

	leadHandler := NewLeadHTTPHandler(s.leadSvcMock)
	pricingHandler := NewPricingHTTPHandler(s.checkoutSvcMock)
	barristaHandler := NewBarristaHTTPHandler(s.barristaSvcMock)
	paymentHandler := NewPaymentHTTPHandler(s.checkoutSvcMock, PaymentCfg{SessionCookie: testSessionCookie})
	confirmationHandler := NewConfirmationHTTPHandler(s.confirmationSvcMock)

	api := e.Group("/api", middleware.Locale())
	api.POST("/leads", leadHandler.Submit)
	api.POST("/barristas/validate", barristaHandler.Validate)
	api.POST("/pricing/academic", pricingHandler.Academic)
	api.POST("/payments/dispatch", paymentHandler.Dispatch)
	api.POST("/payments/paypal/capture", paymentHandler.CapturePayPal)
	api.POST("/payments/transfer/receipt", paymentHandler.UploadReceipt)
	api.GET("/confirmation", confirmationHandler.Confirmation, middleware.CheckoutSession(sessionValidator, testSessionCookie))
	api.GET("/revalidation", confirmationHandler.Revalidation)

	s.e = e
}

func (s *handlersTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *handlersTestSuite) postJSON(target string, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return s.serve(req)
}

func (s *handlersTestSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v), "response body must be json")
}

func (s *handlersTestSuite) TestSubmitAcademicLead() {
	s.leadSvcMock.On("Submit", mock.Anything, model.Lead{
		FirstName:   "Luis",
		LastName:    "Hernández",
		Email:       "luis.hernandez@unam.mx",
		MobilePhone: "5512345678",
	}, mock.MatchedBy(func(p service.LeadPolicy) bool {
		return p.CategoryID != nil && *p.CategoryID == pricing.CategoryProfessor && !p.RequirePhoneValidation && !p.RequireRFC
	})).Return(&service.Submission{CustomerID: testLeadID, Created: true}, nil).Once()

	s.T().Log("academic form carries the category of the role")
	{
		rec := s.postJSON("/api/leads", map[string]any{
			"form":        FormAcademic,
			"firstName":   "Luis",
			"lastName":    "Hernández",
			"email":       "luis.hernandez@unam.mx",
			"mobilePhone": "5512345678",
			"role":        "profesor",
		})
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

		var sub submission
		s.decode(rec, &sub)
		s.Assert().Equal(testLeadID, sub.CustomerID)
		s.Assert().True(sub.Created)
		s.Assert().Nil(sub.Classification)
	}
}

func (s *handlersTestSuite) TestSubmitActiveMemberWithClassification() {
	cls := pricing.Classification{Type: pricing.MemberTypeActiveBarrista, CustomerCategoryID: pricing.CategoryBarrista}
	s.leadSvcMock.On("Submit", mock.Anything, mock.Anything, service.LeadPolicy{RequirePhoneValidation: true, RequireRFC: true}).
		Return(&service.Submission{CustomerID: testLeadID, Classification: &cls}, nil).Once()

	s.T().Log("active member form requires phone validation and rfc")
	{
		rec := s.postJSON("/api/leads", map[string]any{
			"form":        FormActiveMember,
			"firstName":   "Ana",
			"lastName":    "Ruiz",
			"email":       "ana.ruiz@barra.mx",
			"mobilePhone": "+525587654321",
			"rfc":         "RUAA800101AB1",
		})
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

		var sub submission
		s.decode(rec, &sub)
		s.Require().NotNil(sub.Classification)
		s.Assert().Equal(pricing.CategoryBarrista, sub.Classification.CustomerCategoryID)
		s.Assert().NotEmpty(sub.Classification.Message)
	}
}

func (s *handlersTestSuite) TestSubmitInvalidPayload() {
	s.T().Log("academic form without role and with broken email is rejected before the service")
	{
		rec := s.postJSON("/api/leads?lang=en", map[string]any{
			"form":        FormAcademic,
			"firstName":   "Luis",
			"lastName":    "Hernández",
			"email":       "not-an-email",
			"mobilePhone": "55-12",
		})
		s.Require().Equal(http.StatusBadRequest, rec.Code)
		s.Assert().Equal(i18n.English, rec.Header().Get("Content-Language"))

		var body struct {
			Errors []struct {
				Field   string `json:"field"`
				Message string `json:"message"`
			} `json:"errors"`
		}
		s.decode(rec, &body)

		fields := make([]string, 0, len(body.Errors))
		for _, v := range body.Errors {
			fields = append(fields, v.Field)
		}
		s.Assert().ElementsMatch([]string{"email", "mobilePhone", "role"}, fields)
		s.leadSvcMock.AssertNotCalled(s.T(), "Submit", mock.Anything, mock.Anything, mock.Anything)
	}
}

func (s *handlersTestSuite) TestSubmitBusinessErrors() {
	s.leadSvcMock.On("Submit", mock.Anything, mock.MatchedBy(func(l model.Lead) bool { return l.Email == "taken@mail.mx" }), mock.Anything).
		Return(nil, apperrors.NewBusinessErr("email", apperrors.CodeAlreadyRegistered)).Once()
	s.leadSvcMock.On("Submit", mock.Anything, mock.MatchedBy(func(l model.Lead) bool { return l.Email == "blocked@mail.mx" }), mock.Anything).
		Return(nil, apperrors.NewBusinessErr("mobile_phone", apperrors.CodePhoneBlocked)).Once()

	lead := func(email string) map[string]any {
		return map[string]any{
			"form":        FormMembership,
			"firstName":   "Eva",
			"lastName":    "Soto",
			"email":       email,
			"mobilePhone": "5511112222",
		}
	}

	s.T().Log("processed registration answers conflict in requested language")
	{
		rec := s.postJSON("/api/leads?lang=en", lead("taken@mail.mx"))
		s.Require().Equal(http.StatusConflict, rec.Code)

		var body apperrors.LocalizedBusinessErr
		s.decode(rec, &body)
		s.Assert().Equal(apperrors.CodeAlreadyRegistered, body.Code)
		s.Assert().Equal("email", body.Target)
		s.Assert().True(strings.HasPrefix(body.Message, "This email"))
	}

	s.T().Log("blocked phone is forbidden")
	{
		rec := s.postJSON("/api/leads", lead("blocked@mail.mx"))
		s.Require().Equal(http.StatusForbidden, rec.Code)

		var body apperrors.LocalizedBusinessErr
		s.decode(rec, &body)
		s.Assert().Equal(apperrors.CodePhoneBlocked, body.Code)
	}
}

func (s *handlersTestSuite) TestValidateBarrista() {
	s.barristaSvcMock.On("ValidatePhone", mock.Anything, "5533334444").Return(pricing.Classification{Blocked: true}, nil).Once()
	s.barristaSvcMock.On("ValidatePhone", mock.Anything, "5599990000").Return(pricing.Classification{}, webhook.ErrUnavailable).Once()

	s.T().Log("blocked classification is a regular answer")
	{
		rec := s.postJSON("/api/barristas/validate", map[string]string{"mobilePhone": "5533334444"})
		s.Require().Equal(http.StatusOK, rec.Code)

		var cls classification
		s.decode(rec, &cls)
		s.Assert().True(cls.Blocked)
	}

	s.T().Log("unreachable lookup webhook is bad gateway")
	{
		rec := s.postJSON("/api/barristas/validate", map[string]string{"mobilePhone": "5599990000"})
		s.Assert().Equal(http.StatusBadGateway, rec.Code)
	}
}

func (s *handlersTestSuite) TestAcademicQuote() {
	sel := pricing.Selection{IsAcademic: true, University: "UNAM", Role: "decano"}
	s.checkoutSvcMock.On("Quote", sel).Return(pricing.Quote{}, pricing.ErrInvalidRole).Once()

	s.T().Log("invalid role is unprocessable")
	{
		rec := s.postJSON("/api/pricing/academic", sel)
		s.Assert().Equal(http.StatusUnprocessableEntity, rec.Code)
	}
}

func (s *handlersTestSuite) TestDispatch() {
	sel := &pricing.Selection{IsAcademic: true, University: "UAM", Role: "posgrado", PaymentPlan: "contado"}
	ins := payment.Instruction{Widget: payment.WidgetPayPal, Method: model.PaymentMethodPayPal, PriceKey: "academic_uam_posgrado", Amount: 1800, Currency: "MXN"}
	s.checkoutSvcMock.On("Dispatch", service.Purchase{Option: payment.OptionAcademic, Selection: sel}, model.PaymentMethodPayPal, false).Return(ins, nil).Once()
	s.checkoutSvcMock.On("Dispatch", service.Purchase{Option: payment.OptionGeneral}, model.PaymentMethodTransfer, true).Return(payment.Instruction{}, payment.ErrMethodNotAllowed).Once()

	s.T().Log("method aliases are normalized before dispatching")
	{
		rec := s.postJSON("/api/payments/dispatch", map[string]any{
			"selectedOption":    payment.OptionAcademic,
			"selectedMethod":    "PayPal",
			"academicSelection": sel,
		})
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

		var got payment.Instruction
		s.decode(rec, &got)
		s.Assert().Equal(ins, got)
	}

	s.T().Log("disallowed method is unprocessable")
	{
		rec := s.postJSON("/api/payments/dispatch", map[string]any{
			"selectedOption": payment.OptionGeneral,
			"selectedMethod": "bankTransfer",
			"receiptUpload":  true,
		})
		s.Assert().Equal(http.StatusUnprocessableEntity, rec.Code)
	}

	s.T().Log("unknown option fails validation")
	{
		rec := s.postJSON("/api/payments/dispatch", map[string]any{"selectedOption": 9, "selectedMethod": "paypal"})
		s.Assert().Equal(http.StatusBadRequest, rec.Code)
	}
}

func (s *handlersTestSuite) TestCapturePayPal() {
	token, err := s.issuer.Sign(session.Checkout{LeadID: testLeadID, TransactionID: "8XK12"}, time.Now())
	s.Require().NoError(err)

	res := &service.CheckoutResult{TransactionID: "8XK12", ConfirmationQuery: "lead_id=" + testLeadID, Session: token}
	s.checkoutSvcMock.On("CapturePayPal", mock.Anything, service.Purchase{LeadID: testLeadID, Option: payment.OptionGeneral}, "ORDER-1").Return(res, nil).Once()
	s.checkoutSvcMock.On("CapturePayPal", mock.Anything, service.Purchase{LeadID: testLeadID, Option: payment.OptionGeneral}, "ORDER-2").
		Return(nil, &webhook.ProviderError{Kind: webhook.KindDeclined, Message: "INSTRUMENT_DECLINED"}).Once()

	s.T().Log("captured order sets the checkout session cookie")
	{
		rec := s.postJSON("/api/payments/paypal/capture", map[string]any{"leadId": testLeadID, "orderId": "ORDER-1", "selectedOption": 1})
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

		var found *http.Cookie
		for _, ck := range rec.Result().Cookies() {
			if ck.Name == testSessionCookie {
				found = ck
			}
		}
		s.Require().NotNil(found, "session cookie must be set")
		s.Assert().Equal(token.Signed, found.Value)
		s.Assert().True(found.HttpOnly)
	}

	s.T().Log("declined payment is payment required with localized message")
	{
		rec := s.postJSON("/api/payments/paypal/capture?lang=en", map[string]any{"leadId": testLeadID, "orderId": "ORDER-2", "selectedOption": 1})
		s.Require().Equal(http.StatusPaymentRequired, rec.Code)

		var body providerFailure
		s.decode(rec, &body)
		s.Assert().Equal(webhook.KindDeclined, body.Kind)
		s.Assert().Equal("INSTRUMENT_DECLINED", body.Detail)
		s.Assert().True(strings.HasPrefix(body.Message, "Your payment"))
	}
}

func (s *handlersTestSuite) receiptRequest(name string, content []byte) *http.Request {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	s.Require().NoError(w.WriteField("leadId", testLeadID))
	s.Require().NoError(w.WriteField("selectedOption", "2"))
	s.Require().NoError(w.WriteField("isAcademic", "true"))
	s.Require().NoError(w.WriteField("university", "UVM"))
	s.Require().NoError(w.WriteField("role", "licenciatura"))

	part, err := w.CreateFormFile("receipt", name)
	s.Require().NoError(err)
	_, err = part.Write(content)
	s.Require().NoError(err)
	s.Require().NoError(w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/payments/transfer/receipt", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func (s *handlersTestSuite) TestUploadReceipt() {
	token, err := s.issuer.Sign(session.Checkout{LeadID: testLeadID}, time.Now())
	s.Require().NoError(err)

	purchase := service.Purchase{
		LeadID:    testLeadID,
		Option:    payment.OptionAcademic,
		Selection: &pricing.Selection{IsAcademic: true, University: "UVM", Role: "licenciatura"},
	}
	s.checkoutSvcMock.On("SubmitReceipt", mock.Anything, purchase, mock.MatchedBy(func(f service.ReceiptFile) bool {
		return f.Name == "receipt.png" && f.ContentType == "image/png"
	})).Return(&service.CheckoutResult{Session: token}, nil).Once()

	s.T().Log("image receipt is forwarded with sniffed content type")
	{
		rec := s.serve(s.receiptRequest("receipt.png", pngHeader))
		s.Assert().Equal(http.StatusOK, rec.Code, rec.Body.String())
	}

	s.T().Log("plain text is not a receipt")
	{
		rec := s.serve(s.receiptRequest("receipt.txt", []byte("transfer done, trust me")))
		s.Assert().Equal(http.StatusBadRequest, rec.Code)
	}
}

func (s *handlersTestSuite) TestConfirmationReadsSession() {
	token, err := s.issuer.Sign(session.Checkout{LeadID: testLeadID, TransactionID: "cs_1", PaymentMethod: "stripe"}, time.Now())
	s.Require().NoError(err)

	conf := &service.Confirmation{State: service.StateResolved, TransactionID: "cs_1", PaymentMethod: model.PaymentMethodStripe}
	s.confirmationSvcMock.On("Resolve", mock.Anything, service.ConfirmationQuery{Status: "success"}, mock.MatchedBy(func(c *session.Checkout) bool {
		return c != nil && c.LeadID == testLeadID && c.TransactionID == "cs_1"
	})).Return(conf, nil).Once()
	s.confirmationSvcMock.On("Resolve", mock.Anything, service.ConfirmationQuery{LeadID: testLeadID}, (*session.Checkout)(nil)).
		Return(&service.Confirmation{State: service.StateCustomerError}, nil).Once()

	s.T().Log("session cookie fills what the query lacks")
	{
		req := httptest.NewRequest(http.MethodGet, "/api/confirmation?status=success", nil)
		req.AddCookie(&http.Cookie{Name: testSessionCookie, Value: token.Signed})
		rec := s.serve(req)
		s.Require().Equal(http.StatusOK, rec.Code)

		var got service.Confirmation
		s.decode(rec, &got)
		s.Assert().Equal(service.StateResolved, got.State)
		s.Assert().Equal("cs_1", got.TransactionID)
	}

	s.T().Log("tampered session is ignored")
	{
		req := httptest.NewRequest(http.MethodGet, "/api/confirmation?lead_id="+testLeadID, nil)
		req.Header.Set(middleware.SessionHeader, token.Signed+"x")
		rec := s.serve(req)
		s.Require().Equal(http.StatusOK, rec.Code)
	}
}

func (s *handlersTestSuite) TestRevalidation() {
	s.confirmationSvcMock.On("Revalidate", mock.Anything, "c-1", true).Return(&service.Revalidation{Rejected: true, CanUpload: true}, nil).Once()
	s.confirmationSvcMock.On("Revalidate", mock.Anything, "c-2", false).Return(nil, apperrors.NewEntryNotFoundErr("customer c-2 not found")).Once()

	s.T().Log("rejected receipt may be uploaded again")
	{
		rec := s.serve(httptest.NewRequest(http.MethodGet, "/api/revalidation?customer_id=c-1&rejected=true", nil))
		s.Require().Equal(http.StatusOK, rec.Code)

		var rv service.Revalidation
		s.decode(rec, &rv)
		s.Assert().True(rv.CanUpload)
	}

	s.T().Log("unknown customer is not found")
	{
		rec := s.serve(httptest.NewRequest(http.MethodGet, "/api/revalidation?customer_id=c-2", nil))
		s.Assert().Equal(http.StatusNotFound, rec.Code)
	}

	s.T().Log("customer id is required")
	{
		rec := s.serve(httptest.NewRequest(http.MethodGet, "/api/revalidation", nil))
		s.Assert().Equal(http.StatusBadRequest, rec.Code)
	}
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(handlersTestSuite))
}

func TestErrorResponseFallsBackToEcho(t *testing.T) {
	status, body := errorResponse(echo.NewHTTPError(http.StatusMethodNotAllowed), i18n.Default)
	if status != http.StatusMethodNotAllowed || body != nil {
		t.Fatalf("expected echo error to pass through, got %d %v", status, body)
	}

	status, _ = errorResponse(errors.New("boom"), i18n.Default)
	if status != http.StatusInternalServerError {
		t.Fatalf("expected internal error, got %d", status)
	}
}
