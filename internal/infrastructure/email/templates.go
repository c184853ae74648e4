package email

// Plantillas HTML embebidas. Los estilos van inline: los clientes de correo
// no cargan hojas externas.

const welcomeTemplate = `
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937; margin: 0; padding: 24px; background-color: #f9fafb;">
  <div style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
    <h1 style="color: #6366F1; font-size: 22px;">¡Bienvenido a NegocioPro, {{.UserName}}!</h1>
    <p>Tu negocio <strong>{{.BusinessName}}</strong> ya está listo para operar.</p>
    <p>Dejamos configurado un catálogo inicial de categorías, unidades y tipos de
    producto; puedes ajustarlo cuando quieras desde las preferencias del negocio.</p>
    <p style="color: #6b7280; font-size: 13px; margin-top: 32px;">
      Si no creaste esta cuenta, ignora este correo.
    </p>
  </div>
</body>
</html>`

const passwordResetTemplate = `
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937; margin: 0; padding: 24px; background-color: #f9fafb;">
  <div style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
    <h1 style="color: #6366F1; font-size: 22px;">Restablece tu contraseña</h1>
    <p>Hola {{.UserName}},</p>
    <p>Recibimos una solicitud para restablecer tu contraseña. El enlace vence en 15 minutos:</p>
    <p style="margin: 24px 0;">
      <a href="{{.ResetURL}}" style="background: #6366F1; color: #ffffff; padding: 12px 20px; border-radius: 6px; text-decoration: none;">
        Cambiar contraseña
      </a>
    </p>
    <p style="color: #6b7280; font-size: 13px;">
      Si no solicitaste el cambio, ignora este correo: tu contraseña seguirá siendo la misma.
    </p>
  </div>
</body>
</html>`
