package monitoring

import "net/http"

// dashboardPage shows the ready queue and the CPU, mirroring the state served
// by the API. The enqueue and start buttons are disabled while a run is in
// progress; the core rejects mid-run commands regardless.
const dashboardPage = `<!DOCTYPE html>
<html>
<head>
<title>FIFO Scheduler Simulation</title>
<style>
body { font-family: sans-serif; background: #1e1e1e; color: #eee; margin: 2em; }
h1 { font-size: 1.3em; }
.area { background: #333; border-radius: 8px; padding: 1em; margin: 1em 0; min-height: 3em; }
.proc { display: inline-block; background: dodgerblue; color: white;
        border-radius: 5px; padding: 0.6em 1em; margin-right: 0.5em; font-weight: bold; }
.proc.running { background: limegreen; }
button { padding: 0.6em 1.2em; margin-right: 0.6em; }
#status { color: #999; }
</style>
</head>
<body>
<h1>CPU Scheduler Simulation (FIFO Queue)</h1>
<div>
  <button id="enqueue">Add New Process</button>
  <button id="start">Start Simulation</button>
  <span id="status"></span>
</div>
<h2>CPU</h2>
<div class="area" id="cpu"></div>
<h2>Ready Queue (FIFO)</h2>
<div class="area" id="queue"></div>
<script>
async function refresh() {
  const state = await (await fetch('/api/state')).json();
  const queue = await (await fetch('/api/queue')).json();

  const running = state.state !== 'Idle';
  document.getElementById('enqueue').disabled = running;
  document.getElementById('start').disabled = running;
  document.getElementById('status').textContent = state.state;

  const cpu = document.getElementById('cpu');
  cpu.innerHTML = state.on_cpu
    ? '<span class="proc running">' + state.on_cpu.id + '</span>' : '';

  const q = document.getElementById('queue');
  q.innerHTML = queue
    .map(r => '<span class="proc">' + r.id + '</span>')
    .join('');
}

document.getElementById('enqueue').onclick = async () => {
  await fetch('/api/enqueue', {method: 'POST'});
  refresh();
};
document.getElementById('start').onclick = async () => {
  await fetch('/api/start', {method: 'POST'});
  refresh();
};

setInterval(refresh, 250);
refresh();
</script>
</body>
</html>
`

func (m *Monitor) dashboard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	_, err := w.Write([]byte(dashboardPage))
	dieOnErr(err)
}
