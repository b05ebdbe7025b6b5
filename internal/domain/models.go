// Package domain defines the persistence models of the site: homepage and
// blog content, domain listings with their lookup tables, contact page
// configuration and contact submissions. These types are mapped with GORM
// and shared across the repository, service and HTTP layers.
package domain

import (
	"strings"
	"time"
)

// HomePage holds the editable content of the landing page. At most one row
// is active; the site falls back to DefaultHomePage when none is.
//
// Fields:
//   - Title may contain inline HTML (e.g. a highlighted span).
//   - Stat*: three headline statistics shown under the hero.
//   - MarketIntel*: the analytics section heading.
//   - Card{1,2,3}*: the three analytics cards.
//   - ShowAdvancedAnalytics toggles the analytics section.
type HomePage struct {
	ID           uint   `json:"id"             gorm:"primaryKey"`
	Title        string `json:"title"          gorm:"type:varchar(200);not null"`
	Subtitle     string `json:"subtitle"       gorm:"type:varchar(500);not null"`
	HeroImageURL string `json:"hero_image_url" gorm:"type:varchar(500);not null;default:''"`

	DomainsAnalyzed      string `json:"domains_analyzed"       gorm:"type:varchar(20);not null"`
	DomainsAnalyzedLabel string `json:"domains_analyzed_label" gorm:"type:varchar(50);not null"`
	Satisfaction         string `json:"satisfaction"           gorm:"type:varchar(20);not null"`
	SatisfactionLabel    string `json:"satisfaction_label"     gorm:"type:varchar(50);not null"`
	ResponseTime         string `json:"response_time"          gorm:"type:varchar(20);not null"`
	ResponseTimeLabel    string `json:"response_time_label"    gorm:"type:varchar(50);not null"`

	MarketIntelPill     string `json:"market_intel_pill"     gorm:"type:varchar(50);not null"`
	MarketIntelTitle    string `json:"market_intel_title"    gorm:"type:varchar(200);not null"`
	MarketIntelSubtitle string `json:"market_intel_subtitle" gorm:"type:text;not null"`

	Card1Title    string `json:"card1_title"    gorm:"type:varchar(100);not null"`
	Card1Subtitle string `json:"card1_subtitle" gorm:"type:varchar(200);not null"`
	Card1Number   string `json:"card1_number"   gorm:"type:varchar(20);not null"`
	Card1Label    string `json:"card1_label"    gorm:"type:varchar(50);not null"`
	Card2Title    string `json:"card2_title"    gorm:"type:varchar(100);not null"`
	Card2Subtitle string `json:"card2_subtitle" gorm:"type:varchar(200);not null"`
	Card2Number   string `json:"card2_number"   gorm:"type:varchar(20);not null"`
	Card2Label    string `json:"card2_label"    gorm:"type:varchar(50);not null"`
	Card3Title    string `json:"card3_title"    gorm:"type:varchar(100);not null"`
	Card3Subtitle string `json:"card3_subtitle" gorm:"type:varchar(200);not null"`
	Card3Number   string `json:"card3_number"   gorm:"type:varchar(20);not null"`
	Card3Label    string `json:"card3_label"    gorm:"type:varchar(50);not null"`

	ShowAdvancedAnalytics bool      `json:"show_advanced_analytics" gorm:"not null"`
	IsActive              bool      `json:"is_active"               gorm:"not null;index"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// TableName returns the database table name for HomePage.
func (HomePage) TableName() string { return "home_pages" }

// DefaultHomePage is rendered when no HomePage row is active.
func DefaultHomePage() HomePage {
	return HomePage{
		Title:                "Find Your Perfect <span class='text-primary'>Domain</span>",
		Subtitle:             "Expert domain research and acquisition services. We help businesses find and secure the ideal domain names for their brand.",
		DomainsAnalyzed:      "500+",
		DomainsAnalyzedLabel: "Domains Analyzed",
		Satisfaction:         "98%",
		SatisfactionLabel:    "Client Satisfaction",
		ResponseTime:         "24h",
		ResponseTimeLabel:    "Avg. Response Time",
		MarketIntelPill:      "Market Intelligence",
		MarketIntelTitle:     "Data-Driven Domain Research",
		MarketIntelSubtitle:  "Our comprehensive analytics provide deep insights into domain performance, market trends, and competitive landscape.",
		Card1Title:           "Market Trends",
		Card1Subtitle:        "Real-time analysis of domain market trends and pricing patterns",
		Card1Number:          "94%",
		Card1Label:           "Accuracy Rate",
		Card2Title:           "Brand Alignment",
		Card2Subtitle:        "Evaluate how well domains match your brand identity and goals",
		Card2Number:          "89%",
		Card2Label:           "Match Score",
		Card3Title:           "Risk Assessment",
		Card3Subtitle:        "Comprehensive domain history and legal risk evaluation",
		Card3Number:          "99%",
		Card3Label:           "Clean Domains",
	}
}

// BlogCategory groups blog posts.
type BlogCategory struct {
	ID        uint      `json:"id"   gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	Slug      string    `json:"slug" gorm:"type:varchar(100);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for BlogCategory.
func (BlogCategory) TableName() string { return "blog_categories" }

const defaultAuthorBio = "Domain research expert with over 10 years of experience in digital asset evaluation and market analysis. Specializes in emerging market trends and investment strategies."

// Author writes blog posts.
type Author struct {
	ID        uint      `json:"id"      gorm:"primaryKey"`
	Name      string    `json:"name"    gorm:"type:varchar(100);not null"`
	Bio       string    `json:"bio"     gorm:"type:varchar(500);not null;default:''"`
	Avatar    string    `json:"avatar"  gorm:"type:varchar(500);not null;default:''"`
	Email     string    `json:"email"   gorm:"type:varchar(254);not null;default:''"`
	Website   string    `json:"website" gorm:"type:varchar(500);not null;default:''"`
	IsActive  bool      `json:"is_active" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Author.
func (Author) TableName() string { return "authors" }

// DisplayBio returns the biography or a generic one when blank.
func (a Author) DisplayBio() string {
	if strings.TrimSpace(a.Bio) != "" {
		return a.Bio
	}
	return defaultAuthorBio
}

// DisplayAvatar returns the avatar URL, or "" so templates can render initials.
func (a Author) DisplayAvatar() string {
	return strings.TrimSpace(a.Avatar)
}

// BlogPost is an article. Content is Markdown.
type BlogPost struct {
	ID          uint      `json:"id"           gorm:"primaryKey"`
	Title       string    `json:"title"        gorm:"type:varchar(200);not null"`
	Slug        string    `json:"slug"         gorm:"type:varchar(200);not null;uniqueIndex"`
	AuthorID    uint      `json:"author_id"    gorm:"not null;index"`
	CategoryID  uint      `json:"category_id"  gorm:"not null;index"`
	Excerpt     string    `json:"excerpt"      gorm:"type:varchar(500);not null"`
	Content     string    `json:"content"      gorm:"type:text;not null"`
	ImageURL    string    `json:"image_url"    gorm:"type:varchar(500);not null;default:''"`
	ReadTime    string    `json:"read_time"    gorm:"type:varchar(20);not null;default:'5 min read'"`
	IsFeatured  bool      `json:"is_featured"  gorm:"not null"`
	IsPublished bool      `json:"is_published" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"   gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`

	Author   Author       `json:"author"   gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Category BlogCategory `json:"category" gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for BlogPost.
func (BlogPost) TableName() string { return "blog_posts" }

// FormattedDate renders the creation date as "January 02, 2006".
func (p BlogPost) FormattedDate() string {
	return p.CreatedAt.Format("January 02, 2006")
}
