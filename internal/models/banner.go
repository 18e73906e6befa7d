package models

import "time"

// BannerType enumerates the supported banner kinds.
type BannerType string

const (
	BannerTypeLaunch       BannerType = "launch"
	BannerTypePromotion    BannerType = "promotion"
	BannerTypeSeasonal     BannerType = "seasonal"
	BannerTypeAnnouncement BannerType = "announcement"
)

// BannerPosition enumerates where a banner renders on the page.
type BannerPosition string

const (
	BannerPositionTop      BannerPosition = "top"
	BannerPositionFloating BannerPosition = "floating"
	BannerPositionPopup    BannerPosition = "popup"
)

// Banner represents a site-wide announcement. AutoHideSeconds is nullable:
// nil means the banner stays until dismissed.
type Banner struct {
	ID              string    `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Message         string    `db:"message" json:"message"`
	BannerType      string    `db:"banner_type" json:"banner_type"`
	CTAText         string    `db:"cta_text" json:"cta_text"`
	LinkURL         string    `db:"link_url" json:"link_url"`
	Position        string    `db:"position" json:"position"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	Dismissible     bool      `db:"dismissible" json:"dismissible"`
	AutoHideSeconds *int      `db:"auto_hide_seconds" json:"auto_hide_seconds"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
