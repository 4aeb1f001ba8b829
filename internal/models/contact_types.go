package models

// ContactForm is a contact-form submission.
// Subject, Message, ArtworkID and ClassID can be pre-filled from page query parameters.
type ContactForm struct {
	Name      string `json:"name" form:"name" binding:"required"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	Phone     string `json:"phone,omitempty" form:"phone"`
	Subject   string `json:"subject,omitempty" form:"subject"`
	Message   string `json:"message" form:"message" binding:"required"`
	ArtworkID string `json:"artworkId,omitempty" form:"artwork"`
	ClassID   string `json:"classId,omitempty" form:"class"`
}
