package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSiteInfo exposes the donor-facing slice of the site config: the
// donation floor, currency, and the bank-transfer fallback shown when
// checkout initialization fails. Admin emails stay server-side.
func (s *Server) GetSiteInfo(c *gin.Context) {
	site := s.site.Get()

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"organization_name": site.OrganizationName,
		"currency":          site.Currency,
		"min_donation":      site.MinDonation,
		"bank_transfer":     site.BankTransfer,
	}})
}
