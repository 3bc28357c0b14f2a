package email

import "fmt"

const reminderBodyTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Reminder Notification</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2c3e50;">🔔 Reminder Notification</h2>

        <div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px; margin: 20px 0;">
            <h3 style="margin-top: 0; color: #3498db;">%s</h3>
            <p style="margin-bottom: 0;">%s</p>
        </div>

        <p style="color: #7f8c8d; font-size: 14px;">
            This is an automated reminder from your Reminder.io Service.
        </p>

        <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">

        <p style="color: #95a5a6; font-size: 12px; text-align: center;">
            If you have any questions, please contact our support team.
        </p>
    </div>
</body>
</html>`

// FormatReminder renders the notification subject and HTML body for a reminder.
func FormatReminder(title, description string) (subject, body string) {
	if description == "" {
		description = "No additional details provided."
	}
	subject = fmt.Sprintf("Reminder: %s", title)
	body = fmt.Sprintf(reminderBodyTemplate, title, description)
	return subject, body
}
