package main

import (
	"context"
	"flag"
	"log"
	"time"

	bmp180 "github.com/7L2VKS/BMP180"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/pkg/errors"
	"gobot.io/x/gobot/sysfs"
)

type config struct {
	device      string
	address     int
	mode        bmp180.Mode
	sealevel    float64
	interval    time.Duration
	host        string
	token       string
	org         string
	bucket      string
	measurement string
}

func main() {
	var cfg config
	var mode int
	flag.StringVar(&cfg.device, "device", "/dev/i2c-1", "I2C device")
	flag.IntVar(&cfg.address, "address", bmp180.DefaultAddress, "BMP180 I2C address")
	flag.IntVar(&mode, "mode", int(bmp180.Standard), "Oversampling mode (0-3)")
	flag.Float64Var(&cfg.sealevel, "sealevel", bmp180.DefaultSealevelPressure, "Sea level reference pressure (hPa)")
	flag.DurationVar(&cfg.interval, "interval", time.Minute, "Interval between measurements")
	flag.StringVar(&cfg.host, "influx-host", "http://localhost:8086", "InfluxDB server URL")
	flag.StringVar(&cfg.token, "influx-token", "", "InfluxDB auth token")
	flag.StringVar(&cfg.org, "influx-org", "", "InfluxDB organization")
	flag.StringVar(&cfg.bucket, "influx-bucket", "sensors", "InfluxDB bucket")
	flag.StringVar(&cfg.measurement, "measurement", "bmp180", "Measurement name")
	flag.Parse()
	cfg.mode = bmp180.Mode(mode)

	if err := run(cfg); err != nil {
		log.Fatalln(err)
	}
}

func run(cfg config) error {
	dev, err := sysfs.NewI2cDevice(cfg.device)
	if err != nil {
		return errors.Wrap(err, "open I2C device")
	}

	sensor, err := bmp180.New(dev, cfg.address, cfg.mode)
	if err != nil {
		dev.Close()
		return errors.Wrap(err, "init BMP180")
	}
	defer sensor.Close()

	client := influxdb2.NewClient(cfg.host, cfg.token)
	defer client.Close()
	writeAPI := client.WriteAPIBlocking(cfg.org, cfg.bucket)

	for now := range time.NewTicker(cfg.interval).C {
		point, err := measure(sensor, cfg.measurement, cfg.sealevel, now)
		if err != nil {
			return err
		}
		if err := writeAPI.WritePoint(context.Background(), point); err != nil {
			// The sensor is fine; the server may come back.
			log.Println(errors.Wrap(err, "write point"))
		}
	}
	return nil
}

func measure(sensor *bmp180.BMP180, measurement string, sealevel float64, now time.Time) (*write.Point, error) {
	temperature, err := sensor.Temperature()
	if err != nil {
		return nil, errors.Wrap(err, "read temperature")
	}
	pressure, err := sensor.Pressure()
	if err != nil {
		return nil, errors.Wrap(err, "read pressure")
	}

	return influxdb2.NewPoint(measurement,
		map[string]string{"sensor": "bmp180"},
		map[string]interface{}{
			"temperature_c": temperature,
			"pressure_hpa":  pressure,
			"altitude_m":    bmp180.AltitudeAt(pressure, sealevel),
		},
		now), nil
}
