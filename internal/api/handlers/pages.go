package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type pageSection struct {
	Eyebrow string   `json:"eyebrow"`
	Title   string   `json:"title"`
	Body    []string `json:"body"`
}

var aboutPage = gin.H{
	"title": "About Us",
	"sections": []pageSection{
		{
			Eyebrow: "ABOUT US",
			Title:   "Dedication to Quality",
			Body: []string{
				"Our mission is to provide sustainably sourced, hand-picked, micro-roasted quality coffee. Great coffee is our passion and we want to share it with you.",
				"We strive to form profound partnerships with farmers from all over the world to create perspective together and form healthy working relationships built on trust and respect.",
			},
		},
		{
			Eyebrow: "OUR MISSION",
			Title:   "We source coffee from all over the world from farmers we know and trust",
		},
		{
			Eyebrow: "OUR PHILOSOPHY",
			Title:   "Coffee is our craft, our ritual, our passion.",
		},
	},
}

// Form fields only. Delivering the message is left to the browser.
var contactPage = gin.H{
	"title": "Contact Us",
	"fields": []gin.H{
		{"name": "recipient_email", "label": "Recipient Email", "type": "email", "required": true},
		{"name": "subject", "label": "Subject", "type": "text", "required": true},
		{"name": "message", "label": "Message", "type": "textarea", "required": true},
	},
}

func HandleAbout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, aboutPage)
	}
}

func HandleContact() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, contactPage)
	}
}
