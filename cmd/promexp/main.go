package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	bmp180 "github.com/7L2VKS/BMP180"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gobot.io/x/gobot/sysfs"
)

func main() {
	device := flag.String("device", "/dev/i2c-1", "I2C device")
	promaddr := flag.String("prometheus", ":9120", "Prometheus exporter address")
	address := flag.Int("address", bmp180.DefaultAddress, "BMP180 I2C address")
	mode := flag.Int("mode", int(bmp180.Standard), "Oversampling mode (0-3)")
	sealevel := flag.Float64("sealevel", bmp180.DefaultSealevelPressure, "Sea level reference pressure (hPa)")
	flag.Parse()

	if err := run(*device, *promaddr, *address, bmp180.Mode(*mode), *sealevel); err != nil {
		log.Fatalln(err)
	}
}

func run(device, promaddr string, address int, mode bmp180.Mode, sealevel float64) error {
	dev, err := sysfs.NewI2cDevice(device)
	if err != nil {
		return fmt.Errorf("open I2C device: %w", err)
	}

	sensor, err := bmp180.New(dev, address, mode)
	if err != nil {
		dev.Close()
		return fmt.Errorf("init BMP180: %w", err)
	}
	defer sensor.Close()

	readings := &cachedReadings{sensor: sensor, sealevel: sealevel}
	return servePrometheus(promaddr, readings)
}

func servePrometheus(addr string, readings *cachedReadings) error {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "sensors",
		Subsystem: "bmp180",
		Name:      "temperature_celsius",
	}, func() float64 {
		readings.refresh(time.Second)
		return readings.Temperature()
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "sensors",
		Subsystem: "bmp180",
		Name:      "pressure_hpa",
	}, func() float64 {
		readings.refresh(time.Second)
		return readings.Pressure()
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "sensors",
		Subsystem: "bmp180",
		Name:      "altitude_meters",
	}, func() float64 {
		readings.refresh(time.Second)
		return readings.Altitude()
	})

	http.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, nil)
}

// cachedReadings serializes sensor access behind the Prometheus handler,
// which may collect gauges concurrently, and keeps scrapes from stacking
// up conversions on the device.
type cachedReadings struct {
	sensor   *bmp180.BMP180
	sealevel float64

	mut         sync.Mutex
	cached      time.Time
	temperature float64
	pressure    float64
	altitude    float64
}

func (c *cachedReadings) refresh(age time.Duration) {
	c.mut.Lock()
	defer c.mut.Unlock()

	if time.Since(c.cached) < age {
		return
	}

	temperature, err := c.sensor.Temperature()
	if err != nil {
		log.Println("read temperature:", err)
		return
	}
	pressure, err := c.sensor.Pressure()
	if err != nil {
		log.Println("read pressure:", err)
		return
	}

	c.temperature = temperature
	c.pressure = pressure
	c.altitude = bmp180.AltitudeAt(pressure, c.sealevel)
	c.cached = time.Now()
}

func (c *cachedReadings) Temperature() float64 {
	c.mut.Lock()
	defer c.mut.Unlock()
	return c.temperature
}

func (c *cachedReadings) Pressure() float64 {
	c.mut.Lock()
	defer c.mut.Unlock()
	return c.pressure
}

func (c *cachedReadings) Altitude() float64 {
	c.mut.Lock()
	defer c.mut.Unlock()
	return c.altitude
}
