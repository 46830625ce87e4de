package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"frecha-backend/config"
	"frecha-backend/models"
	"frecha-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateProviderInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateProviderInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type CreatePlanInput struct {
	ProviderID   uint    `json:"providerId" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	DataVolume   string  `json:"dataVolume"`
	ValidityDays int     `json:"validityDays" binding:"omitempty,min=1"`
	Price        float64 `json:"price" binding:"min=0"`
	Description  string  `json:"description"`
}

type CreateBundleInput struct {
	ProviderID         uint         `json:"providerId" binding:"required"`
	Name               string       `json:"name" binding:"required"`
	TotalDataVolume    string       `json:"totalDataVolume"`
	TotalPrice         float64      `json:"totalPrice" binding:"min=0"`
	DiscountPercentage float64      `json:"discountPercentage" binding:"omitempty,min=0,max=100"`
	Description        string       `json:"description"`
	Features           models.JSONB `json:"features"`
	IsFeatured         bool         `json:"isFeatured"`
}

func parseResourceID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

// GetProviders lists active service providers.
func GetProviders(c *gin.Context) {
	var providers []models.ServiceProvider
	if err := config.DB.Where("is_active = ?", true).Find(&providers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve providers")
		return
	}
	c.JSON(http.StatusOK, providers)
}

// CreateProvider adds a service provider (admin).
func CreateProvider(c *gin.Context) {
	var input CreateProviderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	provider := models.ServiceProvider{
		Name:        input.Name,
		Description: input.Description,
		IsActive:    true,
	}
	if err := config.DB.Create(&provider).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create provider")
		return
	}
	c.JSON(http.StatusCreated, provider)
}

// UpdateProvider edits a service provider (admin).
func UpdateProvider(c *gin.Context) {
	id, ok := parseResourceID(c)
	if !ok {
		return
	}

	var input UpdateProviderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var provider models.ServiceProvider
	if err := config.DB.First(&provider, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Provider not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		provider.Name = *input.Name
	}
	if input.Description != nil {
		provider.Description = *input.Description
	}
	if input.IsActive != nil {
		provider.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&provider).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update provider")
		return
	}
	c.JSON(http.StatusOK, provider)
}

// GetPlans lists active data plans.
func GetPlans(c *gin.Context) {
	var plans []models.DataPlan
	query := config.DB.Where("is_active = ?", true)
	if providerID := c.Query("provider"); providerID != "" {
		query = query.Where("provider_id = ?", providerID)
	}
	if err := query.Find(&plans).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve plans")
		return
	}
	c.JSON(http.StatusOK, plans)
}

// CreatePlan adds a data plan under a provider (admin).
func CreatePlan(c *gin.Context) {
	var input CreatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var provider models.ServiceProvider
	if err := config.DB.First(&provider, input.ProviderID).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Provider not found")
		return
	}

	plan := models.DataPlan{
		ProviderID:   input.ProviderID,
		Name:         input.Name,
		DataVolume:   input.DataVolume,
		ValidityDays: input.ValidityDays,
		Price:        input.Price,
		Description:  input.Description,
		IsActive:     true,
	}
	if plan.DataVolume == "" {
		plan.DataVolume = "1GB"
	}
	if plan.ValidityDays == 0 {
		plan.ValidityDays = 30
	}

	if err := config.DB.Create(&plan).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create plan")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// GetBundles lists active bundles, featured first.
func GetBundles(c *gin.Context) {
	var bundles []models.Bundle
	if err := config.DB.Where("is_active = ?", true).
		Order("is_featured DESC, created_at DESC").Find(&bundles).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bundles")
		return
	}
	c.JSON(http.StatusOK, bundles)
}

// GetBundlesByProvider lists a provider's active bundles.
func GetBundlesByProvider(c *gin.Context) {
	id, ok := parseResourceID(c)
	if !ok {
		return
	}

	var bundles []models.Bundle
	if err := config.DB.Where("provider_id = ? AND is_active = ?", id, true).
		Find(&bundles).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bundles")
		return
	}
	c.JSON(http.StatusOK, bundles)
}

// CreateBundle adds a bundle under a provider (admin).
func CreateBundle(c *gin.Context) {
	var input CreateBundleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var provider models.ServiceProvider
	if err := config.DB.First(&provider, input.ProviderID).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Provider not found")
		return
	}

	bundle := models.Bundle{
		ProviderID:         input.ProviderID,
		Name:               input.Name,
		TotalDataVolume:    input.TotalDataVolume,
		TotalPrice:         input.TotalPrice,
		DiscountPercentage: input.DiscountPercentage,
		Description:        input.Description,
		Features:           input.Features,
		IsActive:           true,
		IsFeatured:         input.IsFeatured,
	}
	if bundle.Features == nil {
		bundle.Features = models.JSONB{}
	}

	if err := config.DB.Create(&bundle).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create bundle")
		return
	}
	c.JSON(http.StatusCreated, bundle)
}
