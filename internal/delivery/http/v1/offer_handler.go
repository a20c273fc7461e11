package v1

import (
	"net/http"

	"offer-form-backend/internal/delivery/http/response"
	"offer-form-backend/internal/domain"
	"offer-form-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	offerUC               domain.OfferUsecase
	pricePerSqm           float64
	specialShapeSurcharge float64
}

// NewOfferHandler registers the offer routes (public, no auth required)
func NewOfferHandler(public *gin.RouterGroup, offerUC domain.OfferUsecase, pricePerSqm, specialShapeSurcharge float64) {
	handler := &OfferHandler{
		offerUC:               offerUC,
		pricePerSqm:           pricePerSqm,
		specialShapeSurcharge: specialShapeSurcharge,
	}

	public.POST("/send-offer", handler.SendOffer)
	public.GET("/offer/config", handler.Config)
}

// SendOffer godoc
// @Summary      Submit Offer Request
// @Description  Submit a door mat offer request with optional logo uploads. This is a public endpoint.
// @Tags         offer
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /send-offer [post]
func (h *OfferHandler) SendOffer(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.Error(apperror.BadRequest("Ungültige Formulardaten."))
		return
	}

	quote, err := decodeQuote(form)
	if err != nil {
		c.Error(apperror.New(http.StatusBadRequest, err.Error(), err))
		return
	}

	if err := h.offerUC.SubmitOffer(c.Request.Context(), quote); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "E-Mail gesendet", nil)
}

// Config godoc
// @Summary      Offer Pricing Parameters
// @Description  Returns the pricing parameters the form needs to preview prices client-side.
// @Tags         offer
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /offer/config [get]
func (h *OfferHandler) Config(c *gin.Context) {
	response.Success(c, http.StatusOK, "OK", gin.H{
		"pricePerSqm":           h.pricePerSqm,
		"specialShapeSurcharge": h.specialShapeSurcharge,
	})
}
