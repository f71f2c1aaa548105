package handler

import (
	"net/http"
	"time"

	"homehub/internal/domain"
	"homehub/internal/middleware"
	"homehub/internal/models"
	"homehub/internal/repository"

	"github.com/gin-gonic/gin"
)

type HouseHandler struct {
	houses *repository.HouseRepository
}

func NewHouseHandler(houses *repository.HouseRepository) *HouseHandler {
	return &HouseHandler{houses: houses}
}

type houseRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	PropertyType string `json:"property_type"`
	Location     string `json:"location" binding:"required"`

	AddressLine1  string `json:"address_line1"`
	AddressLine2  string `json:"address_line2"`
	City          string `json:"city"`
	StateProvince string `json:"state_province"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`

	RentAmountKES      int64   `json:"rent_amount_kes" binding:"required,min=1"`
	SecurityDepositKES int64   `json:"security_deposit_kes"`
	Bedrooms           int     `json:"bedrooms"`
	Bathrooms          float64 `json:"bathrooms"`
	Size               string  `json:"size"`
	LeaseTerm          string  `json:"lease_term"`
	AvailabilityDate   string  `json:"availability_date"` // YYYY-MM-DD

	Utilities           string `json:"utilities"`
	PetsAllowed         string `json:"pets_allowed"`
	PetRestrictions     string `json:"pet_restrictions"`
	ParkingAvailability string `json:"parking_availability"`
	FurnishedStatus     string `json:"furnished_status"`
	Amenities           string `json:"amenities"`
	SmokingPolicy       string `json:"smoking_policy"`
}

// List is the public search endpoint (?query= matches title/location).
func (h *HouseHandler) List(c *gin.Context) {
	houses, err := h.houses.Search(c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"houses": houses})
}

func (h *HouseHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}
	house, err := h.houses.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if house == nil {
		respondError(c, domain.ErrHouseNotFound)
		return
	}
	c.JSON(http.StatusOK, house)
}

// Create adds a listing. Landlord only.
func (h *HouseHandler) Create(c *gin.Context) {
	var req houseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	house := &models.House{
		Title:                req.Title,
		Description:          req.Description,
		PropertyType:         req.PropertyType,
		Location:             req.Location,
		Available:            true,
		OwnerID:              middleware.GetUserID(c),
		AddressLine1:         req.AddressLine1,
		AddressLine2:         req.AddressLine2,
		City:                 req.City,
		StateProvince:        req.StateProvince,
		PostalCode:           req.PostalCode,
		Country:              req.Country,
		RentAmountCents:      req.RentAmountKES * 100,
		SecurityDepositCents: req.SecurityDepositKES * 100,
		Bedrooms:             req.Bedrooms,
		Bathrooms:            req.Bathrooms,
		Size:                 req.Size,
		LeaseTerm:            req.LeaseTerm,
		Utilities:            req.Utilities,
		PetsAllowed:          req.PetsAllowed,
		PetRestrictions:      req.PetRestrictions,
		ParkingAvailability:  req.ParkingAvailability,
		FurnishedStatus:      req.FurnishedStatus,
		Amenities:            req.Amenities,
		SmokingPolicy:        req.SmokingPolicy,
	}
	if req.AvailabilityDate != "" {
		if d, err := time.Parse("2006-01-02", req.AvailabilityDate); err == nil {
			house.AvailabilityDate = &d
		}
	}
	if err := h.houses.Create(house); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, house)
}

func (h *HouseHandler) ListMine(c *gin.Context) {
	houses, err := h.houses.ListByOwner(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"houses": houses})
}

// Update replaces mutable listing fields. Owner only.
func (h *HouseHandler) Update(c *gin.Context) {
	house, ok := h.ownedHouse(c)
	if !ok {
		return
	}
	var req houseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	house.Title = req.Title
	house.Description = req.Description
	house.PropertyType = req.PropertyType
	house.Location = req.Location
	house.AddressLine1 = req.AddressLine1
	house.AddressLine2 = req.AddressLine2
	house.City = req.City
	house.StateProvince = req.StateProvince
	house.PostalCode = req.PostalCode
	house.Country = req.Country
	house.RentAmountCents = req.RentAmountKES * 100
	house.SecurityDepositCents = req.SecurityDepositKES * 100
	house.Bedrooms = req.Bedrooms
	house.Bathrooms = req.Bathrooms
	house.Size = req.Size
	house.LeaseTerm = req.LeaseTerm
	house.Utilities = req.Utilities
	house.PetsAllowed = req.PetsAllowed
	house.PetRestrictions = req.PetRestrictions
	house.ParkingAvailability = req.ParkingAvailability
	house.FurnishedStatus = req.FurnishedStatus
	house.Amenities = req.Amenities
	house.SmokingPolicy = req.SmokingPolicy
	if err := h.houses.Update(house); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, house)
}

func (h *HouseHandler) SetAvailability(c *gin.Context) {
	house, ok := h.ownedHouse(c)
	if !ok {
		return
	}
	var req struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.houses.SetAvailable(house.ID, *req.Available); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": house.ID, "available": *req.Available})
}

func (h *HouseHandler) GetPaymentMethods(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}
	pm, err := h.houses.GetPaymentMethods(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if pm == nil {
		c.JSON(http.StatusOK, gin.H{"payment_methods": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment_methods": pm})
}

// UpsertPaymentMethods configures the accepted payment options. Owner only.
func (h *HouseHandler) UpsertPaymentMethods(c *gin.Context) {
	house, ok := h.ownedHouse(c)
	if !ok {
		return
	}
	var pm models.PaymentMethods
	if err := c.ShouldBindJSON(&pm); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pm.HouseID = house.ID
	if err := h.houses.UpsertPaymentMethods(&pm); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pm)
}

func (h *HouseHandler) ownedHouse(c *gin.Context) (*models.House, bool) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, false
	}
	house, err := h.houses.GetByID(id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if house == nil {
		respondError(c, domain.ErrHouseNotFound)
		return nil, false
	}
	if house.OwnerID != middleware.GetUserID(c) {
		respondError(c, domain.ErrUnauthorized)
		return nil, false
	}
	return house, true
}
