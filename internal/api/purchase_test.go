package api

import (
	"net/http"
	"testing"

	"pens_market/internal/domain"
	"pens_market/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuyPen(t *testing.T) {
	env := newTestEnv(t, "")
	sellerID := env.registerSeller("0xA1", "pw")
	buyerID := env.createUser("0xB2", "pw", "")
	pen := env.addPen(sellerID, "Blue Pen", 1, nil)
	item := decode[domain.Cart](t, env.do(http.MethodPost, "/add_to_cart", map[string]string{"buyer_id": idStr(buyerID), "pen_id": idStr(pen.ID)}))

	rec := env.do(http.MethodPost, "/buy_pen/"+idStr(pen.ID), map[string]string{"buyer_id": idStr(buyerID), "transaction_hash": "0xabc123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[struct {
		Message    string `json:"message"`
		PurchaseID uint   `json:"purchase_id"`
	}](t, rec)
	assert.Equal(t, "Purchase successful", resp.Message)
	require.NotZero(t, resp.PurchaseID)

	var stored domain.Purchase
	require.NoError(t, env.DB.First(&stored, resp.PurchaseID).Error)
	assert.Equal(t, buyerID, stored.BuyerID)
	assert.Equal(t, pen.ID, stored.PenID)
	require.NotNil(t, stored.TransactionHash)
	assert.Equal(t, "0xabc123", *stored.TransactionHash)

	// The cart row survives the purchase
	rec = env.do(http.MethodGet, "/cart/"+idStr(buyerID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []domain.Cart{item}, decode[[]domain.Cart](t, rec))
	assert.Contains(t, env.Events.types(), events.PenPurchased)
}

func TestBuyPenNotFound(t *testing.T) {
	env := newTestEnv(t, "")
	sellerID := env.registerSeller("0xA1", "pw")
	pen := env.addPen(sellerID, "Blue Pen", 1, nil)

	rec := env.do(http.MethodPost, "/buy_pen/"+idStr(pen.ID), map[string]string{"buyer_id": "999", "transaction_hash": "0x1"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Buyer not found", errorOf(t, rec))

	rec = env.do(http.MethodPost, "/buy_pen/999", map[string]string{"buyer_id": idStr(sellerID), "transaction_hash": "0x1"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Pen not found", errorOf(t, rec))

	var count int64
	require.NoError(t, env.DB.Model(&domain.Purchase{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBuyPenRequiresTransactionHash(t *testing.T) {
	env := newTestEnv(t, "")
	sellerID := env.registerSeller("0xA1", "pw")
	pen := env.addPen(sellerID, "Blue Pen", 1, nil)

	rec := env.do(http.MethodPost, "/buy_pen/"+idStr(pen.ID), map[string]string{"buyer_id": idStr(sellerID)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
