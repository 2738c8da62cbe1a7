package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lexcongreso/registration/internal/cache"
	cacheMocks "github.com/lexcongreso/registration/internal/cache/mocks"
	apperrors "github.com/lexcongreso/registration/internal/errors"
	"github.com/lexcongreso/registration/internal/events"
	eventsMocks "github.com/lexcongreso/registration/internal/events/mocks"
	"github.com/lexcongreso/registration/internal/model"
	"github.com/lexcongreso/registration/internal/payment"
	"github.com/lexcongreso/registration/internal/pricing"
	rpsMocks "github.com/lexcongreso/registration/internal/repository/mocks"
	"github.com/lexcongreso/registration/internal/session"
	"github.com/lexcongreso/registration/internal/webhook"
	webhookMocks "github.com/lexcongreso/registration/internal/webhook/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const sessionAlgorithm = "EdDSA"

type checkoutTestData struct {
	ctx      context.Context
	customer *model.Customer
}

type checkoutServiceTestSuite struct {
	suite.Suite
	checkoutSvc     CheckoutService
	customerRpsMock *rpsMocks.CustomerRepository
	cacheMock       *cacheMocks.WebhookResponseCache
	webhookMock     *webhookMocks.Client
	publisherMock   *eventsMocks.Publisher
	validator       *session.Validator
	testData        *checkoutTestData
}

func (s *checkoutServiceTestSuite) SetupSuite() {
	s.testData = &checkoutTestData{
		ctx: context.Background(),
		customer: &model.Customer{
			ID:          "6f1c2b8e-95a4-4d0e-8f43-3c1e2b7d9a01",
			FirstName:   "Luis",
			LastName:    "Herrera",
			Email:       "luis.herrera@unam.mx",
			MobilePhone: "5587654321",
			Status:      model.StatusLead,
		},
	}
}

func (s *checkoutServiceTestSuite) SetupTest() {
	t := s.T()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	s.Require().NoError(err, "failed to generate ed25519 keys")
	method := jwt.GetSigningMethod(sessionAlgorithm)

	s.customerRpsMock = rpsMocks.NewCustomerRepository(t)
	s.cacheMock = cacheMocks.NewWebhookResponseCache(t)
	s.webhookMock = webhookMocks.NewClient(t)
	s.publisherMock = eventsMocks.NewPublisher(t)
	s.validator = session.NewValidator(method, pub)
	s.checkoutSvc = NewCheckoutService(
		CheckoutCfg{
			StripeSuccessURL: "https://congreso.example.mx/confirmacion?transaction_id={CHECKOUT_SESSION_ID}",
			StripeCancelURL:  "https://congreso.example.mx/registro",
		},
		s.customerRpsMock,
		s.cacheMock,
		s.webhookMock,
		s.publisherMock,
		session.NewIssuer("test-congress", method, 30*time.Minute, priv),
	)
}

func (s *checkoutServiceTestSuite) academicPurchase() Purchase {
	return Purchase{
		LeadID: s.testData.customer.ID,
		Option: payment.OptionAcademic,
		Selection: &pricing.Selection{
			IsAcademic: true,
			University: pricing.UniversityUNAM,
			Role:       pricing.RoleProfessor,
		},
	}
}

func (s *checkoutServiceTestSuite) TestCapturePayPal() {
	ctx := s.testData.ctx
	customer := s.testData.customer
	body := json.RawMessage(`{"success":true,"data":{"transaction_id":"8XK12","qr_code":"T-77"}}`)
	reply := &webhook.Reply{Success: true, Data: json.RawMessage(`{"transaction_id":"8XK12","qr_code":"T-77"}`), Body: body}

	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()
	s.webhookMock.On("CapturePayPalOrder", ctx, webhook.PayPalCapture{
		OrderID:  "ORDER-1",
		LeadID:   customer.ID,
		Email:    customer.Email,
		Amount:   pricing.AcademicPrice,
		Currency: pricing.Currency,
		PriceKey: pricing.PriceKeyAcademic,
	}).Return(reply, nil).Once()
	s.cacheMock.On("Create", ctx, mock.MatchedBy(func(r *cache.WebhookResponse) bool {
		return r.LeadID == customer.ID && r.TransactionID == "8XK12" && string(r.Body) == string(body)
	})).Return(nil).Once()
	s.publisherMock.On("PaymentSubmitted", ctx, mock.MatchedBy(func(e events.PaymentSubmitted) bool {
		return e.TransactionID == "8XK12" && e.PriceKey == pricing.PriceKeyAcademic
	})).Return(nil).Once()

	s.T().Log("captured payment is cached and a session is issued")
	{
		res, err := s.checkoutSvc.CapturePayPal(ctx, s.academicPurchase(), "ORDER-1")
		s.Require().NoError(err, "no error must be raised")
		s.Assert().Equal("8XK12", res.TransactionID)

		q, err := url.ParseQuery(res.ConfirmationQuery)
		s.Require().NoError(err)
		s.Assert().Equal(customer.ID, q.Get("lead_id"))
		s.Assert().Equal("8XK12", q.Get("transaction_id"))
		s.Assert().Equal("paypal", q.Get("method"))

		checkout, err := s.validator.Verify(res.Session.Signed)
		s.Require().NoError(err, "issued session must be valid")
		s.Assert().Equal(customer.ID, checkout.LeadID)
		s.Assert().True(checkout.IsAcademic)
		s.Assert().Equal(pricing.AcademicPrice, checkout.Amount)
	}
}

func (s *checkoutServiceTestSuite) TestCapturePayPalDeclined() {
	ctx := s.testData.ctx
	customer := s.testData.customer
	declined := &webhook.ProviderError{Kind: webhook.KindDeclined, Message: "INSTRUMENT_DECLINED"}

	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()
	s.webhookMock.On("CapturePayPalOrder", ctx, mock.AnythingOfType("webhook.PayPalCapture")).Return(nil, declined).Once()

	s.T().Log("declined capture is surfaced once and nothing is cached")
	{
		_, err := s.checkoutSvc.CapturePayPal(ctx, Purchase{LeadID: customer.ID, Option: payment.OptionGeneral}, "ORDER-2")
		var pErr *webhook.ProviderError
		s.Require().True(errors.As(err, &pErr), "provider error must be raised")
		s.Assert().Equal(webhook.KindDeclined, pErr.Kind)
		s.webhookMock.AssertNumberOfCalls(s.T(), "CapturePayPalOrder", 1)
		s.cacheMock.AssertNotCalled(s.T(), "Create", ctx, mock.Anything)
	}
}

func (s *checkoutServiceTestSuite) TestCheckoutUnknownLead() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("FindByID", ctx, "missing").Return(nil, nil).Once()

	s.T().Log("purchase for unknown lead is refused")
	{
		_, err := s.checkoutSvc.CapturePayPal(ctx, Purchase{LeadID: "missing", Option: payment.OptionGeneral}, "ORDER-3")
		var nfErr *apperrors.EntryNotFoundErr
		s.Assert().ErrorAs(err, &nfErr, "not found error must be raised")
	}
}

func (s *checkoutServiceTestSuite) TestActiveMemberCardRefused() {
	ctx := s.testData.ctx

	s.T().Log("active member option only accepts membership proof")
	{
		_, err := s.checkoutSvc.StartStripeCheckout(ctx, Purchase{LeadID: s.testData.customer.ID, Option: payment.OptionActiveMember})
		s.Assert().ErrorIs(err, payment.ErrMethodNotAllowed)
		s.customerRpsMock.AssertNotCalled(s.T(), "FindByID", ctx, mock.Anything)
	}
}

func (s *checkoutServiceTestSuite) TestStartStripeCheckout() {
	ctx := s.testData.ctx
	customer := s.testData.customer
	reply := &webhook.Reply{Success: true, Data: json.RawMessage(`{"url":"https://checkout.stripe.com/c/pay/cs_1","session_id":"cs_1"}`)}

	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()
	s.webhookMock.On("CreateStripeOrder", ctx, mock.MatchedBy(func(o webhook.StripeOrder) bool {
		return o.Amount == pricing.MembershipPrice &&
			strings.Contains(o.SuccessURL, "{CHECKOUT_SESSION_ID}") &&
			strings.Contains(o.SuccessURL, "&lead_id="+customer.ID) &&
			strings.HasPrefix(o.CancelURL, "https://congreso.example.mx/registro?lead_id=")
	})).Return(reply, nil).Once()
	s.cacheMock.On("DeleteByLeadID", ctx, customer.ID).Return(nil).Once()

	s.T().Log("stripe checkout returns the access url and carries it in the session")
	{
		res, err := s.checkoutSvc.StartStripeCheckout(ctx, Purchase{LeadID: customer.ID, Option: payment.OptionMembership})
		s.Require().NoError(err, "no error must be raised")
		s.Assert().Equal("https://checkout.stripe.com/c/pay/cs_1", res.StripeAccessURL)
		s.Assert().Empty(res.ConfirmationQuery)

		checkout, err := s.validator.Verify(res.Session.Signed)
		s.Require().NoError(err)
		s.Assert().Equal("cs_1", checkout.TransactionID)
		s.Assert().Equal(res.StripeAccessURL, checkout.StripeAccessURL)
		s.publisherMock.AssertNotCalled(s.T(), "PaymentSubmitted", ctx, mock.Anything)
	}
}

func (s *checkoutServiceTestSuite) TestStartStripeCheckoutWithoutURL() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()
	s.webhookMock.On("CreateStripeOrder", ctx, mock.AnythingOfType("webhook.StripeOrder")).
		Return(&webhook.Reply{Success: true, Data: json.RawMessage(`{}`)}, nil).Once()

	s.T().Log("relay answer without url is a provider error")
	{
		_, err := s.checkoutSvc.StartStripeCheckout(ctx, Purchase{LeadID: customer.ID, Option: payment.OptionGeneral})
		var pErr *webhook.ProviderError
		s.Require().ErrorAs(err, &pErr)
		s.Assert().Equal(webhook.KindProvider, pErr.Kind)
	}
}

func (s *checkoutServiceTestSuite) TestSubmitReceipt() {
	ctx := s.testData.ctx
	customer := s.testData.customer
	purchase := s.academicPurchase()
	purchase.Selection.Role = pricing.RoleUndergraduate
	reply := &webhook.Reply{Success: true, Data: json.RawMessage(`{"transaction_id":"TR-9"}`), Body: json.RawMessage(`{"success":true,"data":{"transaction_id":"TR-9"}}`)}

	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()
	s.webhookMock.On("UploadReceipt", ctx, mock.MatchedBy(func(r webhook.Receipt) bool {
		return r.PriceKey == pricing.PriceKeyUndergraduate &&
			r.Amount == pricing.UndergraduatePrice &&
			r.Kind == string(payment.WidgetReceiptUpload) &&
			r.FileName == "voucher.pdf"
	})).Return(reply, nil).Once()
	s.cacheMock.On("Create", ctx, mock.AnythingOfType("*cache.WebhookResponse")).Return(errors.New("redis is down")).Once()
	s.publisherMock.On("PaymentSubmitted", ctx, mock.AnythingOfType("events.PaymentSubmitted")).Return(nil).Once()

	s.T().Log("undergraduate receipt uses the student price key, cache failure is ignored")
	{
		res, err := s.checkoutSvc.SubmitReceipt(ctx, purchase, ReceiptFile{
			Name:        "voucher.pdf",
			ContentType: "application/pdf",
			Content:     strings.NewReader("%PDF-1.4"),
		})
		s.Require().NoError(err, "no error must be raised")
		s.Assert().Equal("TR-9", res.TransactionID)
		s.Assert().Equal(model.PaymentMethodTransfer, res.Instruction.Method)
	}
}

func TestCheckoutService(t *testing.T) {
	suite.Run(t, new(checkoutServiceTestSuite))
}
