package email

// SendWelcomeEmail greets a newly registered user.
func (c *Client) SendWelcomeEmail(to, firstName string) error {
	if firstName == "" {
		firstName = "there"
	}

	return c.SendEmail(
		to,
		"Welcome to GS!",
		TemplateWelcome,
		map[string]string{
			"UserFirstName": firstName,
		},
	)
}
