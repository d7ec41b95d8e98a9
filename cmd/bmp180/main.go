package main

import (
	"flag"
	"fmt"
	"log"

	bmp180 "github.com/7L2VKS/BMP180"
	"gobot.io/x/gobot/sysfs"
)

func main() {
	device := flag.String("device", "/dev/i2c-1", "I2C device")
	address := flag.Int("address", bmp180.DefaultAddress, "BMP180 I2C address")
	mode := flag.Int("mode", int(bmp180.UltraHighRes), "Oversampling mode (0-3)")
	sealevel := flag.Float64("sealevel", bmp180.DefaultSealevelPressure, "Sea level reference pressure (hPa)")
	flag.Parse()

	if err := run(*device, *address, bmp180.Mode(*mode), *sealevel); err != nil {
		log.Fatalln(err)
	}
}

func run(device string, address int, mode bmp180.Mode, sealevel float64) error {
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

	temperature, err := sensor.Temperature()
	if err != nil {
		return fmt.Errorf("read temperature: %w", err)
	}
	pressure, err := sensor.Pressure()
	if err != nil {
		return fmt.Errorf("read pressure: %w", err)
	}
	altitude, err := sensor.Altitude(sealevel)
	if err != nil {
		return fmt.Errorf("read altitude: %w", err)
	}

	fmt.Printf("%v °C (%v °F)\n", temperature, bmp180.Fahrenheit(temperature))
	fmt.Printf("%v hPa\n", pressure)
	fmt.Printf("%v m\n", altitude)
	return nil
}
