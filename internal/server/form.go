package server

// formPage is the submission form served at GET /. Field highlighting and
// the progressive disclosure of the pricing sections are purely client-side
// aids; the engine revalidates everything on submit.
const formPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>MSA Generator</title>
<style>
body { font-family: sans-serif; max-width: 640px; margin: 2rem auto; padding: 0 1rem; }
label { display: block; margin-top: 0.75rem; font-weight: bold; }
input[type=text], input[type=email], input[type=tel], input[type=number], textarea { width: 100%; padding: 0.4rem; }
fieldset { margin-top: 1.5rem; }
.error { color: #b00020; }
button { margin-top: 1.5rem; padding: 0.6rem 1.5rem; }
</style>
</head>
<body>
<h1>Master Service Agreement</h1>
<form method="post" action="/generate">
  <fieldset>
    <legend>Client Information</legend>
    <label for="client_name">Company Name</label>
    <input type="text" id="client_name" name="client_name" required>
    <label for="client_email">Email</label>
    <input type="email" id="client_email" name="client_email" required>
    <label for="client_address">Mailing Address</label>
    <textarea id="client_address" name="client_address" rows="3" required></textarea>
    <label for="client_phone">Phone (optional)</label>
    <input type="tel" id="client_phone" name="client_phone">
  </fieldset>

  <fieldset>
    <legend>Pricing Model</legend>
    <label><input type="radio" name="pricing_model" value="workstation" onchange="toggle()"> Per Workstation</label>
    <div id="workstation_fields" style="display:none">
      <label for="workstation_count">Workstation Count</label>
      <input type="number" id="workstation_count" name="workstation_count" min="1">
      <label for="workstation_price">Price per Workstation</label>
      <input type="text" id="workstation_price" name="workstation_price" value="110.00">
    </div>
    <label><input type="radio" name="pricing_model" value="user" onchange="toggle()"> Per User</label>
    <div id="user_fields" style="display:none">
      <label for="user_count">User Count</label>
      <input type="number" id="user_count" name="user_count" min="1">
      <label for="user_price">Price per User</label>
      <input type="text" id="user_price" name="user_price" value="15.00">
    </div>
  </fieldset>

  <fieldset>
    <legend>Optional Services</legend>
    <label><input type="checkbox" name="compliance" value="1"> Compliance Services</label>
    <label><input type="checkbox" name="security_plus" value="1"> Security Plus Services</label>
  </fieldset>

  <button type="submit">Generate Agreement</button>
</form>
<script>
function toggle() {
  var model = document.querySelector('input[name=pricing_model]:checked');
  document.getElementById('workstation_fields').style.display =
    model && model.value === 'workstation' ? 'block' : 'none';
  document.getElementById('user_fields').style.display =
    model && model.value === 'user' ? 'block' : 'none';
}
</script>
</body>
</html>
`
