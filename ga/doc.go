// Package ga evolves fixed-topology feed-forward networks with a generational
// genetic algorithm.
//
// Every generation each agent plays one episode. Parents are drawn with
// probability softmax(score), children are built by crossover and Gaussian
// mutation, and the best len(pop)-num_offspring agents survive unchanged.
// The network layout never changes; only weights evolve.
//
// Basic usage:
//
//	// Load configuration
//	config, err := ga.LoadConfig("configs/snake.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	// Create a new population
//	rng := rand.New(rand.NewSource(config.Population.Seed))
//	pop, err := ga.NewPopulation(config, rng, nn.Factory(config.Network.Neurons, config.Network.Activations))
//	if err != nil {
//		log.Fatalf("Error creating population: %v", err)
//	}
//
//	// Run generations with an episode function such as arena.Arena.Run
//	for i := 0; i < config.Population.Generations; i++ {
//		winner, err := pop.RunGeneration(ctx, episode)
//		if err != nil {
//			log.Fatalf("Error running generation: %v", err)
//		}
//
//		if winner != nil {
//			fmt.Println("Snake filled the board!")
//			break
//		}
//	}
package ga
