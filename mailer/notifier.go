package mailer

import "fmt"

// Notifier delivers a one-time code to a user's email address. Two
// interchangeable implementations exist: SMTP (gomail) and Gmail (OAuth2).
type Notifier interface {
	SendOTP(email, name, code string) error
}

const otpSubject = "Water Management System - OTP Verification"

func otpHTML(name, code string) string {
	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
          <h2 style="color: #2563eb;">Water Management System</h2>
          <p>Dear %s,</p>
          <p>Your OTP for verification is:</p>
          <div style="background-color: #f3f4f6; padding: 20px; margin: 20px 0; text-align: center;">
            <h1 style="color: #1f2937; font-size: 32px; margin: 0;">%s</h1>
          </div>
          <p>This OTP is valid for 10 minutes only.</p>
          <p>If you didn't request this, please ignore this email.</p>
          <hr style="margin: 30px 0;">
          <p style="color: #6b7280; font-size: 14px;">Water Management System Team</p>
        </div>
    `, name, code)
}
